package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerlabs/ft-contract/token"
)

var transferMemo string

var transferCmd = &cobra.Command{
	Use:   "transfer <receiver> <amount>",
	Short: "Transfer tokens from the calling account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, err := requireCaller()
		if err != nil {
			return err
		}
		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad amount %q: %w", args[1], err)
		}
		return withContract(func(c *token.Contract) error {
			ctx := token.CallContext{Caller: sender, AttachedDeposit: 1}
			if err := c.FtTransfer(ctx, args[0], amount, transferMemo); err != nil {
				return err
			}
			fmt.Printf("transferred %d: %s -> %s\n", amount, sender, args[0])
			return nil
		})
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferMemo, "memo", "", "transfer memo")
	rootCmd.AddCommand(transferCmd)
}
