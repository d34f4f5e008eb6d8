package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"gppn-network/core"
)

var trustGraph = core.NewTrustGraph()

func trustAttest(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	weight, _ := cmd.Flags().GetFloat64("weight")
	return trustGraph.AddEdge(core.TrustEdge{From: core.DID(from), To: core.DID(to), Weight: weight})
}

func trustScores(cmd *cobra.Command, args []string) error {
	maxIter, _ := cmd.Flags().GetInt("max-iter")
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	scores := trustGraph.ComputeScores(maxIter, threshold)
	out, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var trustCmd = &cobra.Command{Use: "trust", Short: "Trust graph operations"}
var trustAttestCmd = &cobra.Command{Use: "attest", Short: "Record a trust edge", RunE: trustAttest}
var trustScoresCmd = &cobra.Command{Use: "scores", Short: "Compute global trust scores", RunE: trustScores}

func init() {
	trustAttestCmd.Flags().String("from", "", "attesting DID")
	trustAttestCmd.Flags().String("to", "", "attested DID")
	trustAttestCmd.Flags().Float64("weight", 0, "edge weight in [-1,1]")
	trustScoresCmd.Flags().Int("max-iter", 50, "max power-iteration rounds")
	trustScoresCmd.Flags().Float64("threshold", 1e-6, "convergence threshold")
	trustCmd.AddCommand(trustAttestCmd, trustScoresCmd)
}

// TrustCmd is the root trust command.
var TrustCmd = trustCmd
