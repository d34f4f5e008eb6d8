// Package cli wires the thin cobra-based command surface over the GPPN
// and Veritas core packages. Building out the CLI's UX was explicitly
// out of scope; this is the ambient entrypoint wiring a runnable repo
// still needs.
package cli

import "github.com/spf13/cobra"

// RootCmd assembles every subcommand group.
func RootCmd() *cobra.Command {
	root := &cobra.Command{Use: "gppn", Short: "GPPN/Veritas node CLI"}
	root.AddCommand(NetCmd, PeerCmd, PaymentCmd, RoutingCmd, SettlementCmd, TrustCmd, CredentialCmd, ProofCmd, ServeCmd)
	return root
}
