package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"gppn-network/core"
)

var didRegistry = core.NewDidRegistry(core.NewMemoryStore())

func credentialVerify(cmd *cobra.Command, args []string) error {
	var vc core.VerifiableCredential
	if err := json.Unmarshal([]byte(args[0]), &vc); err != nil {
		return err
	}
	pubHex, _ := cmd.Flags().GetString("issuer-pubkey")
	pub, err := hexDecode(pubHex)
	if err != nil {
		return err
	}
	verifier := core.NewCredentialVerifier(didRegistry, vc.IssuerDID)
	result := verifier.Check(&vc, pub, time.Now())
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var credentialCmd = &cobra.Command{Use: "credential", Short: "Verifiable credential operations"}
var credentialVerifyCmd = &cobra.Command{Use: "verify <credential-json>", Short: "Run the verifier checklist over a credential", Args: cobra.ExactArgs(1), RunE: credentialVerify}

func init() {
	credentialVerifyCmd.Flags().String("issuer-pubkey", "", "hex-encoded issuer Ed25519 public key")
	credentialCmd.AddCommand(credentialVerifyCmd)
}

// CredentialCmd is the root credential command.
var CredentialCmd = credentialCmd
