package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"gppn-network/core"
	"gppn-network/pkg/config"
)

var (
	netMu   sync.RWMutex
	netNode *core.Node
)

// netInit lazily starts the libp2p node backing every peer/network
// subcommand, reusing the already-loaded AppConfig.
func netInit(cmd *cobra.Command, _ []string) error {
	netMu.Lock()
	defer netMu.Unlock()
	if netNode != nil {
		return nil
	}
	cfg := core.Config{
		Namespace:      config.AppConfig.Network.Namespace,
		ListenAddr:     config.AppConfig.Network.ListenAddr,
		BootstrapPeers: config.AppConfig.Network.BootstrapPeers,
		DiscoveryTag:   config.AppConfig.Network.DiscoveryTag,
		EnableDHT:      config.AppConfig.Network.EnableDHT,
	}
	n, err := core.NewNode(cfg)
	if err != nil {
		return err
	}
	netNode = n
	return nil
}

var netCmd = &cobra.Command{Use: "network", Short: "Network node lifecycle", PersistentPreRunE: netInit}

var netStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show network node status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		netMu.RLock()
		n := netNode
		netMu.RUnlock()
		cmd.Printf("peers: %d\n", len(n.Peers()))
		return nil
	},
}

func init() {
	netCmd.AddCommand(netStatusCmd)
}

// NetCmd is the root network lifecycle command.
var NetCmd = netCmd
