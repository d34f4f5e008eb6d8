package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"gppn-network/core"
)

func proofAge(cmd *cobra.Command, args []string) error {
	dobStr, _ := cmd.Flags().GetString("dob")
	minAge, _ := cmd.Flags().GetInt64("min-age")
	dob, err := time.Parse("2006-01-02", dobStr)
	if err != nil {
		return err
	}
	proof, err := core.CreateAgeProof(dob, minAge, time.Now())
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func proofResidency(cmd *cobra.Command, args []string) error {
	region, _ := cmd.Flags().GetString("region")
	allowed, _ := cmd.Flags().GetStringSlice("allowed")
	proof, err := core.CreateResidencyProof(region, allowed)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var proofCmd = &cobra.Command{Use: "proof", Short: "Zero-knowledge proof generation"}
var proofAgeCmd = &cobra.Command{Use: "age", Short: "Generate an age range proof", RunE: proofAge}
var proofResidencyCmd = &cobra.Command{Use: "residency", Short: "Generate a residency set-membership proof", RunE: proofResidency}

func init() {
	proofAgeCmd.Flags().String("dob", "", "date of birth, YYYY-MM-DD")
	proofAgeCmd.Flags().Int64("min-age", 18, "minimum age to prove")
	proofResidencyCmd.Flags().String("region", "", "claimed region")
	proofResidencyCmd.Flags().StringSlice("allowed", nil, "allowed region set")
	proofCmd.AddCommand(proofAgeCmd, proofResidencyCmd)
}

// ProofCmd is the root proof command.
var ProofCmd = proofCmd
