package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlabs/ft-contract/token"
)

var balanceOfCmd = &cobra.Command{
	Use:   "balance-of <account>",
	Short: "Show an account's token balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(func(c *token.Contract) error {
			balance, registered, err := c.FtBalanceOf(args[0])
			if err != nil {
				return err
			}
			if !registered {
				fmt.Println("not registered")
				return nil
			}
			fmt.Println(balance)
			return nil
		})
	},
}

var totalSupplyCmd = &cobra.Command{
	Use:   "total-supply",
	Short: "Show the fixed total supply",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(func(c *token.Contract) error {
			fmt.Println(c.FtTotalSupply())
			return nil
		})
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Show the token metadata record",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(func(c *token.Contract) error {
			m := c.FtMetadata()
			fmt.Printf("spec:     %s\n", m.Spec)
			fmt.Printf("name:     %s\n", m.Name)
			fmt.Printf("symbol:   %s\n", m.Symbol)
			fmt.Printf("decimals: %d\n", m.Decimals)
			if m.Reference != "" {
				fmt.Printf("reference: %s (%s)\n", m.Reference, m.ReferenceHashString())
			}
			return nil
		})
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List registered accounts and balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(func(c *token.Contract) error {
			ids, err := c.Accounts()
			if err != nil {
				return err
			}
			for _, id := range ids {
				balance, _, err := c.FtBalanceOf(id)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%d\n", id, balance)
			}
			return c.CheckSupplyInvariant()
		})
	},
}

func init() {
	rootCmd.AddCommand(balanceOfCmd, totalSupplyCmd, metadataCmd, accountsCmd)
}
