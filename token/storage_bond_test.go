package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorageBalanceBounds(t *testing.T) {
	c, _ := newTestContract(t)
	min, max := c.StorageBalanceBounds()
	require.EqualValues(t, StorageBond, min)
	require.Equal(t, min, max)
}

func TestStorageDeposit(t *testing.T) {
	c, notifier := newTestContract(t)

	ctx := CallContext{Caller: "bob", AttachedDeposit: StorageBond + 70}
	balance, refund, err := c.StorageDeposit(ctx, "", false)
	require.NoError(t, err)
	require.EqualValues(t, StorageBond, balance.Total)
	require.Zero(t, balance.Available)
	require.EqualValues(t, 70, refund)

	require.Contains(t, notifier.Lines,
		`EVENT_JSON:{"standard":"nep145","version":"1.0.0","event":"storage_register","data":[{"account_id":"bob"}]}`)
}

func TestStorageDepositForOtherAccount(t *testing.T) {
	c, _ := newTestContract(t)

	ctx := CallContext{Caller: testOwner, AttachedDeposit: StorageBond}
	_, refund, err := c.StorageDeposit(ctx, "bob", false)
	require.NoError(t, err)
	require.Zero(t, refund)

	_, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.True(t, registered)
}

func TestStorageDepositIdempotent(t *testing.T) {
	c, _ := newTestContract(t)
	registerAccount(t, c, "bob")

	// Second deposit is a pure refund; the registration set is unchanged
	// and the account is never double-charged.
	ctx := CallContext{Caller: "bob", AttachedDeposit: StorageBond}
	balance, refund, err := c.StorageDeposit(ctx, "", false)
	require.NoError(t, err)
	require.EqualValues(t, StorageBond, refund)
	require.EqualValues(t, StorageBond, balance.Total)

	accounts, err := c.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 3) // contract, owner, bob
}

func TestStorageDepositInsufficient(t *testing.T) {
	c, _ := newTestContract(t)

	ctx := CallContext{Caller: "bob", AttachedDeposit: StorageBond - 1}
	_, _, err := c.StorageDeposit(ctx, "", false)
	require.ErrorIs(t, err, ErrInsufficientDeposit)

	_, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.False(t, registered)
}

func TestStorageBalanceOf(t *testing.T) {
	c, _ := newTestContract(t)
	registerAccount(t, c, "bob")

	balance, registered, err := c.StorageBalanceOf("bob")
	require.NoError(t, err)
	require.True(t, registered)
	require.EqualValues(t, StorageBond, balance.Total)
	require.Zero(t, balance.Available)

	_, registered, err = c.StorageBalanceOf("ghost")
	require.NoError(t, err)
	require.False(t, registered)
}

func TestStorageWithdraw(t *testing.T) {
	c, _ := newTestContract(t)
	registerAccount(t, c, "bob")

	balance, err := c.StorageWithdraw(oneUnit("bob"), nil)
	require.NoError(t, err)
	require.EqualValues(t, StorageBond, balance.Total)

	amount := uint64(5)
	_, err = c.StorageWithdraw(oneUnit("bob"), &amount)
	require.ErrorIs(t, err, ErrInsufficientDeposit)

	_, err = c.StorageWithdraw(oneUnit("ghost"), nil)
	require.ErrorIs(t, err, ErrNotRegistered)

	_, err = c.StorageWithdraw(CallContext{Caller: "bob"}, nil)
	require.ErrorIs(t, err, ErrBadAttachedDeposit)
}

func TestStorageUnregister(t *testing.T) {
	c, notifier := newTestContract(t)
	registerAccount(t, c, "bob")

	released, err := c.StorageUnregister(oneUnit("bob"), false)
	require.NoError(t, err)
	require.EqualValues(t, StorageBond, released)

	_, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.False(t, registered)

	require.Contains(t, notifier.Lines,
		`EVENT_JSON:{"standard":"nep145","version":"1.0.0","event":"storage_unregister","data":[{"account_id":"bob"}]}`)
}

func TestStorageUnregisterNonZeroBalance(t *testing.T) {
	c, _ := newTestContract(t)
	registerAccount(t, c, "bob")
	require.NoError(t, c.FtTransfer(oneUnit(testOwner), "bob", 500, ""))

	_, err := c.StorageUnregister(oneUnit("bob"), false)
	require.ErrorIs(t, err, ErrNonZeroBalance)

	// Balance and registration unchanged.
	balance, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.True(t, registered)
	require.EqualValues(t, 500, balance)
}

func TestStorageUnregisterForceSweepsToCustody(t *testing.T) {
	c, _ := newTestContract(t)
	registerAccount(t, c, "bob")
	require.NoError(t, c.FtTransfer(oneUnit(testOwner), "bob", 500, ""))

	released, err := c.StorageUnregister(oneUnit("bob"), true)
	require.NoError(t, err)
	require.EqualValues(t, StorageBond, released)

	_, registered, err := c.FtBalanceOf("bob")
	require.NoError(t, err)
	require.False(t, registered)

	// The remainder is held by the contract account; the immutable total
	// supply is untouched and conservation still holds exactly.
	custody, _, err := c.FtBalanceOf(testContract)
	require.NoError(t, err)
	require.EqualValues(t, 500, custody)
	require.EqualValues(t, testSupply, c.FtTotalSupply())
	require.NoError(t, c.CheckSupplyInvariant())
}

func TestStorageUnregisterUnknownAccount(t *testing.T) {
	c, _ := newTestContract(t)
	_, err := c.StorageUnregister(oneUnit("ghost"), false)
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestStorageUnregisterCustodialAccount(t *testing.T) {
	c, _ := newTestContract(t)
	_, err := c.StorageUnregister(oneUnit(testContract), true)
	require.ErrorIs(t, err, ErrUnauthorized)
}
