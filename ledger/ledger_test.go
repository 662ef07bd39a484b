package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerlabs/ft-contract/common"
)

const supply = 1_000_000

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return New(common.NewContext(common.NewMemStore()), supply)
}

func register(t *testing.T, l *Ledger, ids ...string) {
	t.Helper()
	for _, id := range ids {
		created, err := l.Register(id)
		require.NoError(t, err)
		require.True(t, created)
	}
}

func TestRegisteredZeroDistinctFromAbsent(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice")

	balance, registered, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.True(t, registered)
	require.Zero(t, balance)

	_, registered, err = l.BalanceOf("bob")
	require.NoError(t, err)
	require.False(t, registered)
}

func TestRegisterIdempotent(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice")
	require.NoError(t, l.Deposit("alice", 5))

	created, err := l.Register("alice")
	require.NoError(t, err)
	require.False(t, created)

	// The second Register must not reset the entry.
	balance, _, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.EqualValues(t, 5, balance)
}

func TestDepositWithdraw(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice")

	require.ErrorIs(t, l.Deposit("ghost", 1), ErrNotRegistered)
	require.ErrorIs(t, l.Withdraw("ghost", 1), ErrNotRegistered)

	require.NoError(t, l.Deposit("alice", 100))
	require.NoError(t, l.Withdraw("alice", 40))

	balance, _, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.EqualValues(t, 60, balance)

	require.ErrorIs(t, l.Withdraw("alice", 61), ErrInsufficientBalance)
}

func TestDepositOverflow(t *testing.T) {
	// A ledger bounded by the maximum representable balance: the uint64
	// overflow check itself must fire, not just the conservation bound.
	l := New(common.NewContext(common.NewMemStore()), math.MaxUint64)
	register(t, l, "alice")

	require.NoError(t, l.Deposit("alice", math.MaxUint64))
	require.ErrorIs(t, l.Deposit("alice", 1), ErrOverflow)

	balance, _, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64), balance)
}

func TestDepositConservationBound(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice")

	require.NoError(t, l.Deposit("alice", supply))
	require.ErrorIs(t, l.Deposit("alice", 1), ErrOverflow)
}

func TestTransfer(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice", "bob")
	require.NoError(t, l.Deposit("alice", supply))

	require.NoError(t, l.Transfer("alice", "bob", 300))

	aliceBalance, _, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.EqualValues(t, supply-300, aliceBalance)
	bobBalance, _, err := l.BalanceOf("bob")
	require.NoError(t, err)
	require.EqualValues(t, 300, bobBalance)

	sum, err := l.TotalBalance()
	require.NoError(t, err)
	require.EqualValues(t, supply, sum)
}

func TestTransferValidation(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice", "bob")
	require.NoError(t, l.Deposit("alice", 10))

	require.ErrorIs(t, l.Transfer("alice", "alice", 1), ErrSelfTransfer)
	require.ErrorIs(t, l.Transfer("alice", "bob", 0), ErrZeroAmount)
	require.ErrorIs(t, l.Transfer("alice", "ghost", 1), ErrNotRegistered)
	require.ErrorIs(t, l.Transfer("ghost", "bob", 1), ErrNotRegistered)
	require.ErrorIs(t, l.Transfer("alice", "bob", 11), ErrInsufficientBalance)

	// None of the failed attempts may have moved anything.
	aliceBalance, _, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.EqualValues(t, 10, aliceBalance)
	bobBalance, _, err := l.BalanceOf("bob")
	require.NoError(t, err)
	require.Zero(t, bobBalance)
}

func TestTransferSequencePreservesSupply(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "a", "b", "c")
	require.NoError(t, l.Deposit("a", supply))

	moves := []struct {
		from, to string
		amount   uint64
	}{
		{"a", "b", 400_000},
		{"b", "c", 150_000},
		{"c", "a", 150_000},
		{"a", "c", 1},
	}
	for _, m := range moves {
		require.NoError(t, l.Transfer(m.from, m.to, m.amount))
		sum, err := l.TotalBalance()
		require.NoError(t, err)
		require.EqualValues(t, supply, sum)
	}
}

func TestUnregister(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "alice")
	require.NoError(t, l.Deposit("alice", 1))

	require.ErrorIs(t, l.Unregister("alice"), ErrNonZeroBalance)
	require.ErrorIs(t, l.Unregister("ghost"), ErrNotRegistered)

	require.NoError(t, l.Withdraw("alice", 1))
	require.NoError(t, l.Unregister("alice"))

	_, registered, err := l.BalanceOf("alice")
	require.NoError(t, err)
	require.False(t, registered)
}

func TestAccounts(t *testing.T) {
	l := newTestLedger(t)
	register(t, l, "carol", "alice", "bob")

	ids, err := l.Accounts()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob", "carol"}, ids)
}
