package cmd

import (
	"fmt"

	"github.com/decentraland/thirdparty-registry/src/gateway"

	"github.com/spf13/cobra"
)

var quoteQty uint64

func init() {
	quoteCmd.Flags().Uint64Var(&quoteQty, "qty", 1, "number of slots")
	RootCmd.AddCommand(quoteCmd)
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Prints the current price of item slots in accepted token units",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		reg, err := gateway.NewRegistry(applicationCtx, conf)
		if err != nil {
			return
		}

		price, err := reg.QuoteItemSlots(applicationCtx, quoteQty)
		if err != nil {
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), price.String())
		return
	},
}
