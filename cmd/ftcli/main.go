// ftcli operates a token contract state held in a local pebble store:
// initialize it, inspect balances and metadata, and apply transfers. It is
// an operator tool; callers assert their own identity with --as.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerlabs/ft-contract/common"
	"github.com/ledgerlabs/ft-contract/pebble"
	"github.com/ledgerlabs/ft-contract/token"
)

var (
	storePath string
	caller    string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "ftcli",
	Short:         "Operate a fungible-token contract store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "ft-state", "path to the contract state database")
	rootCmd.PersistentFlags().StringVar(&caller, "as", "", "account identifier acting as the caller")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// withStore opens the database, runs fn and closes the database again.
func withStore(fn func(store common.Store, log *zap.Logger) error) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := pebble.New(storePath, nil)
	if err != nil {
		return fmt.Errorf("open store %q: %w", storePath, err)
	}
	defer func() { _ = db.Close() }()

	return fn(db, log)
}

// withContract loads an initialized contract from the store.
func withContract(fn func(c *token.Contract) error) error {
	return withStore(func(store common.Store, log *zap.Logger) error {
		c, err := token.Load(store, token.WithLogger(log))
		if err != nil {
			return err
		}
		return fn(c)
	})
}

func requireCaller() (string, error) {
	if caller == "" {
		return "", fmt.Errorf("--as is required for state-changing calls")
	}
	return caller, nil
}
