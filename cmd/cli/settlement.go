package cli

import (
	"encoding/json"
	"math/big"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gppn-network/core"
)

var settlementMgr = func() *core.SettlementManager {
	m := core.NewSettlementManager()
	m.Register(core.NewInternalAdapter("USD", "EUR", "BTC", "ETH"))
	return m
}()

func settlementInitiate(cmd *cobra.Command, args []string) error {
	adapterID, _ := cmd.Flags().GetString("adapter")
	sender, _ := cmd.Flags().GetString("sender")
	receiver, _ := cmd.Flags().GetString("receiver")
	amount, _ := cmd.Flags().GetInt64("amount")
	currency, _ := cmd.Flags().GetString("currency")

	amt := core.Amount{Value: big.NewInt(amount), Currency: core.Currency{Kind: core.CurrencyCrypto, Code: currency}}
	id, err := settlementMgr.Initiate(adapterID, uuid.New(), amt, core.DID(sender), core.DID(receiver))
	if err != nil {
		return err
	}
	cmd.Println(id.String())
	return nil
}

func settlementConfirm(cmd *cobra.Command, args []string) error {
	adapterID, _ := cmd.Flags().GetString("adapter")
	id, err := uuid.Parse(args[0])
	if err != nil {
		return err
	}
	receipt, err := settlementMgr.Confirm(adapterID, id)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

var settlementCmd = &cobra.Command{Use: "settlement", Short: "Settlement operations"}
var settlementInitiateCmd = &cobra.Command{Use: "initiate", Short: "Initiate a settlement", RunE: settlementInitiate}
var settlementConfirmCmd = &cobra.Command{Use: "confirm <settlement-id>", Short: "Confirm a settlement", Args: cobra.ExactArgs(1), RunE: settlementConfirm}

func init() {
	for _, c := range []*cobra.Command{settlementInitiateCmd, settlementConfirmCmd} {
		c.Flags().String("adapter", "internal", "settlement adapter id")
	}
	settlementInitiateCmd.Flags().String("sender", "", "sender DID")
	settlementInitiateCmd.Flags().String("receiver", "", "receiver DID")
	settlementInitiateCmd.Flags().Int64("amount", 0, "amount")
	settlementInitiateCmd.Flags().String("currency", "USD", "currency code")
	settlementCmd.AddCommand(settlementInitiateCmd, settlementConfirmCmd)
}

// SettlementCmd is the root settlement command.
var SettlementCmd = settlementCmd
