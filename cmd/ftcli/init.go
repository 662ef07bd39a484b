package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerlabs/ft-contract/common"
	"github.com/ledgerlabs/ft-contract/token"
)

var (
	initContractID  string
	initOwnerID     string
	initTotalSupply uint64
	initName        string
	initSymbol      string
	initDecimals    uint8
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a fresh contract store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store common.Store, log *zap.Logger) error {
			meta := token.Metadata{
				Spec:     token.MetadataSpec,
				Name:     initName,
				Symbol:   initSymbol,
				Decimals: initDecimals,
			}
			c, err := token.New(store, initContractID, initOwnerID, initTotalSupply, meta,
				token.WithLogger(log))
			if err != nil {
				return err
			}
			fmt.Printf("initialized %s: owner %s, total supply %d\n",
				c.ContractID(), c.OwnerID(), c.FtTotalSupply())
			return nil
		})
	},
}

func init() {
	initCmd.Flags().StringVar(&initContractID, "contract", "", "contract account identifier")
	initCmd.Flags().StringVar(&initOwnerID, "owner", "", "owner account identifier")
	initCmd.Flags().Uint64Var(&initTotalSupply, "total-supply", 0, "fixed total supply")
	initCmd.Flags().StringVar(&initName, "name", "", "token name")
	initCmd.Flags().StringVar(&initSymbol, "symbol", "", "ticker symbol")
	initCmd.Flags().Uint8Var(&initDecimals, "decimals", 18, "display precision")
	for _, f := range []string{"contract", "owner", "total-supply", "name", "symbol"} {
		_ = initCmd.MarkFlagRequired(f)
	}
	rootCmd.AddCommand(initCmd)
}
