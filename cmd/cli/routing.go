package cli

import (
	"encoding/json"
	"math/big"

	"github.com/spf13/cobra"

	"gppn-network/core"
)

var drt = core.NewDRT()

func routeFind(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetInt64("amount")
	currency, _ := cmd.Flags().GetString("currency")
	k, _ := cmd.Flags().GetInt("k")
	maxHops, _ := cmd.Flags().GetInt("max-hops")
	minTrust, _ := cmd.Flags().GetFloat64("min-trust")

	amt := core.Amount{Value: big.NewInt(amount), Currency: core.Currency{Kind: core.CurrencyCrypto, Code: currency}}
	routes, err := core.FindRoutes(drt, core.DID(from), core.DID(to), amt, k, maxHops, minTrust, core.DefaultScoringWeights)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var routingCmd = &cobra.Command{Use: "routing", Short: "Routing table operations"}
var routeFindCmd = &cobra.Command{Use: "find", Short: "Find routes between two DIDs", RunE: routeFind}

func init() {
	routeFindCmd.Flags().String("from", "", "origin DID")
	routeFindCmd.Flags().String("to", "", "destination DID")
	routeFindCmd.Flags().Int64("amount", 0, "amount")
	routeFindCmd.Flags().String("currency", "USD", "currency code")
	routeFindCmd.Flags().Int("k", 3, "max routes to return")
	routeFindCmd.Flags().Int("max-hops", 6, "max hop count")
	routeFindCmd.Flags().Float64("min-trust", 0, "minimum trust threshold")
	routingCmd.AddCommand(routeFindCmd)
}

// RoutingCmd is the root routing command.
var RoutingCmd = routingCmd
