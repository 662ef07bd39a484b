package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerlabs/ft-contract/pebble"
	"github.com/ledgerlabs/ft-contract/token"
)

func run(t *testing.T, store string, args ...string) error {
	t.Helper()
	caller = "" // persistent flag values survive between executions
	rootCmd.SetArgs(append([]string{"--store", store}, args...))
	return rootCmd.Execute()
}

func TestInitTransferQuery(t *testing.T) {
	store := filepath.Join(t.TempDir(), "state")

	require.NoError(t, run(t, store, "init",
		"--contract", "ft.contract", "--owner", "owner",
		"--total-supply", "1000000", "--name", "Example Token", "--symbol", "EXT"))

	// Second init over the same store must fail.
	require.ErrorIs(t, run(t, store, "init",
		"--contract", "ft.contract", "--owner", "owner",
		"--total-supply", "1000000", "--name", "Example Token", "--symbol", "EXT"),
		token.ErrAlreadyInitialized)

	require.NoError(t, run(t, store, "--as", "bob", "storage-deposit"))
	require.NoError(t, run(t, store, "--as", "owner", "transfer", "bob", "500"))
	require.NoError(t, run(t, store, "balance-of", "bob"))
	require.NoError(t, run(t, store, "accounts"))

	// Transfer without --as is rejected before touching state.
	require.Error(t, run(t, store, "transfer", "bob", "1"))

	db, err := pebble.New(store, nil)
	require.NoError(t, err)
	defer db.Close()

	c, err := token.Load(db)
	require.NoError(t, err)
	balance, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.True(t, registered)
	require.EqualValues(t, 500, balance)
	require.NoError(t, c.CheckSupplyInvariant())
}
