package cli

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gppn-network/core"
	"gppn-network/pkg/config"
)

func serveNode(cmd *cobra.Command, _ []string) error {
	cfg := config.AppConfig

	netCfg := core.Config{
		Namespace:      cfg.Network.Namespace,
		ListenAddr:     cfg.Network.ListenAddr,
		BootstrapPeers: cfg.Network.BootstrapPeers,
		DiscoveryTag:   cfg.Network.DiscoveryTag,
		EnableDHT:      cfg.Network.EnableDHT,
	}
	node, err := core.NewNode(netCfg)
	if err != nil {
		return err
	}

	keys, err := core.NewIdentityKeyStore()
	if err != nil {
		return err
	}

	self := core.DID("did:gppn:key:" + cfg.Network.Namespace)
	orch := core.NewOrchestrator(self, node, core.NewMemoryStore(), keys)
	orch.Start()

	var srv *http.Server
	if cfg.AdminAPI.Enabled {
		api := core.NewAdminAPI(orch)
		srv = &http.Server{Addr: cfg.AdminAPI.BindAddr, Handler: api.Router()}
		go func() {
			logrus.Infof("admin api listening on %s", cfg.AdminAPI.BindAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logrus.Errorf("admin api: %v", err)
			}
		}()
	}

	cmd.Println("node started")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	if srv != nil {
		_ = srv.Close()
	}
	orch.Stop()
	keys.Close()
	return node.Close()
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the node as a long-lived daemon, optionally exposing the admin API",
	RunE:  serveNode,
}

// ServeCmd is the root daemon command.
var ServeCmd = serveCmd
