package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerlabs/ft-contract/token"
)

var (
	storageDepositAccount string
	storageDepositAmount  uint64
	storageUnregForce     bool
)

var storageDepositCmd = &cobra.Command{
	Use:   "storage-deposit",
	Short: "Register an account by paying the storage bond",
	RunE: func(cmd *cobra.Command, args []string) error {
		payer, err := requireCaller()
		if err != nil {
			return err
		}
		return withContract(func(c *token.Contract) error {
			ctx := token.CallContext{Caller: payer, AttachedDeposit: storageDepositAmount}
			balance, refund, err := c.StorageDeposit(ctx, storageDepositAccount, false)
			if err != nil {
				return err
			}
			fmt.Printf("bond held: %d, refunded: %d\n", balance.Total, refund)
			return nil
		})
	},
}

var storageUnregisterCmd = &cobra.Command{
	Use:   "storage-unregister",
	Short: "Remove the calling account from the registration set",
	RunE: func(cmd *cobra.Command, args []string) error {
		who, err := requireCaller()
		if err != nil {
			return err
		}
		return withContract(func(c *token.Contract) error {
			ctx := token.CallContext{Caller: who, AttachedDeposit: 1}
			released, err := c.StorageUnregister(ctx, storageUnregForce)
			if err != nil {
				return err
			}
			fmt.Printf("unregistered %s, bond released: %d\n", who, released)
			return nil
		})
	},
}

var storageBoundsCmd = &cobra.Command{
	Use:   "storage-bounds",
	Short: "Show the storage bond price",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContract(func(c *token.Contract) error {
			min, max := c.StorageBalanceBounds()
			fmt.Printf("min: %d, max: %d\n", min, max)
			return nil
		})
	},
}

func init() {
	storageDepositCmd.Flags().StringVar(&storageDepositAccount, "account", "", "account to register (defaults to the caller)")
	storageDepositCmd.Flags().Uint64Var(&storageDepositAmount, "deposit", token.StorageBond, "attached native payment")
	storageUnregisterCmd.Flags().BoolVar(&storageUnregForce, "force", false, "sweep any remaining balance to the contract account")
	rootCmd.AddCommand(storageDepositCmd, storageUnregisterCmd, storageBoundsCmd)
}
