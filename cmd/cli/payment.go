package cli

import (
	"encoding/json"
	"math/big"

	"github.com/spf13/cobra"

	"gppn-network/core"
)

func paymentCreate(cmd *cobra.Command, args []string) error {
	sender, _ := cmd.Flags().GetString("sender")
	receiver, _ := cmd.Flags().GetString("receiver")
	amount, _ := cmd.Flags().GetInt64("amount")
	currency, _ := cmd.Flags().GetString("currency")

	b := core.NewPaymentMessageBuilder()
	b.Sender(core.DID(sender)).
		Receiver(core.DID(receiver)).
		Amount(core.Amount{Value: big.NewInt(amount), Currency: core.Currency{Kind: core.CurrencyCrypto, Code: currency}}).
		TimestampMs(uint64(core.Now()))

	pm, err := b.Build()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var paymentCmd = &cobra.Command{Use: "payment", Short: "Payment message operations"}
var paymentCreateCmd = &cobra.Command{Use: "create", Short: "Create a payment message", RunE: paymentCreate}

func init() {
	paymentCreateCmd.Flags().String("sender", "", "sender DID")
	paymentCreateCmd.Flags().String("receiver", "", "receiver DID")
	paymentCreateCmd.Flags().Int64("amount", 0, "amount")
	paymentCreateCmd.Flags().String("currency", "USD", "currency code")
	paymentCmd.AddCommand(paymentCreateCmd)
}

// PaymentCmd is the root payment command.
var PaymentCmd = paymentCmd
