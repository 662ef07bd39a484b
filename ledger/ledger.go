// Package ledger keeps the account balance mapping and the registration set
// of a fungible-token contract. Both live in the same keyspace: a ledger
// entry exists exactly for registered accounts.
//
// All balance arithmetic is checked. An operation that would underflow or
// overflow fails with a distinguishable error and leaves state untouched.
package ledger

import (
	"fmt"
	"math/bits"

	"github.com/ledgerlabs/ft-contract/common"
)

// Ledger is the balance mapping handle. It is owned by a single contract
// instance; the platform serializes calls, so no internal locking exists.
type Ledger struct {
	ctx         common.Context
	totalSupply uint64
}

// New returns a ledger over ctx bounded by totalSupply. The bound is the
// conservation invariant: no deposit may push any balance (and therefore the
// sum of balances) above it.
func New(ctx common.Context, totalSupply uint64) *Ledger {
	return &Ledger{ctx: ctx, totalSupply: totalSupply}
}

// BalanceOf returns the account balance and whether the account is
// registered. A zero balance with registered == true is a present entry,
// not an absent one.
func (l *Ledger) BalanceOf(id string) (uint64, bool, error) {
	acc, ok, err := l.getAccount(id)
	if err != nil {
		return 0, false, err
	}
	return acc.Balance, ok, nil
}

// IsRegistered reports registration set membership.
func (l *Ledger) IsRegistered(id string) (bool, error) {
	_, ok, err := l.getAccount(id)
	return ok, err
}

// Register adds an account with a zero balance. It reports false without
// touching state when the account is already registered.
func (l *Ledger) Register(id string) (bool, error) {
	_, ok, err := l.getAccount(id)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	return true, l.putAccount(id, Account{})
}

// Unregister removes an account entry. The balance must be zero; policy for
// non-empty accounts (sweep vs. reject) is decided above the ledger.
func (l *Ledger) Unregister(id string) error {
	acc, ok, err := l.getAccount(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unregister %q: %w", id, ErrNotRegistered)
	}
	if acc.Balance != 0 {
		return fmt.Errorf("unregister %q: %w", id, ErrNonZeroBalance)
	}
	return l.ctx.Delete(accountKey(id))
}

// Deposit credits amount to a registered account.
func (l *Ledger) Deposit(id string, amount uint64) error {
	acc, ok, err := l.getAccount(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("deposit to %q: %w", id, ErrNotRegistered)
	}
	newBalance, err := l.checkedAdd(acc.Balance, amount)
	if err != nil {
		return fmt.Errorf("deposit to %q: %w", id, err)
	}
	acc.Balance = newBalance
	return l.putAccount(id, acc)
}

// Withdraw debits amount from a registered account.
func (l *Ledger) Withdraw(id string, amount uint64) error {
	acc, ok, err := l.getAccount(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("withdraw from %q: %w", id, ErrNotRegistered)
	}
	if amount > acc.Balance {
		return fmt.Errorf("withdraw from %q: %w", id, ErrInsufficientBalance)
	}
	acc.Balance -= amount
	return l.putAccount(id, acc)
}

// Transfer moves amount between two distinct registered accounts as one
// state transition: either both entries change or neither does. All
// validation happens before the first write.
func (l *Ledger) Transfer(from, to string, amount uint64) error {
	if from == to {
		return ErrSelfTransfer
	}
	if amount == 0 {
		return ErrZeroAmount
	}

	src, ok, err := l.getAccount(from)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("sender %q: %w", from, ErrNotRegistered)
	}
	if amount > src.Balance {
		return fmt.Errorf("sender %q: %w", from, ErrInsufficientBalance)
	}

	dst, ok, err := l.getAccount(to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("receiver %q: %w", to, ErrNotRegistered)
	}
	newDst, err := l.checkedAdd(dst.Balance, amount)
	if err != nil {
		return fmt.Errorf("receiver %q: %w", to, err)
	}

	src.Balance -= amount
	dst.Balance = newDst
	if err := l.putAccount(from, src); err != nil {
		return err
	}
	return l.putAccount(to, dst)
}

// Accounts returns all registered account identifiers in key order.
func (l *Ledger) Accounts() ([]string, error) {
	it := l.ctx.NewIterator([]byte{accountPrefix})
	defer it.Release()

	var ids []string
	for it.Next() {
		ids = append(ids, string(it.Key()[1:]))
	}
	return ids, it.Error()
}

// TotalBalance sums every entry. Used by conservation checks and tooling.
func (l *Ledger) TotalBalance() (uint64, error) {
	ids, err := l.Accounts()
	if err != nil {
		return 0, err
	}
	var sum uint64
	for _, id := range ids {
		bal, _, err := l.BalanceOf(id)
		if err != nil {
			return 0, err
		}
		next, carry := bits.Add64(sum, bal, 0)
		if carry != 0 {
			return 0, ErrOverflow
		}
		sum = next
	}
	return sum, nil
}

// checkedAdd adds with an overflow check and enforces the conservation
// bound: no single balance may exceed total supply, since the sum of all
// balances never does.
func (l *Ledger) checkedAdd(balance, amount uint64) (uint64, error) {
	sum, carry := bits.Add64(balance, amount, 0)
	if carry != 0 || sum > l.totalSupply {
		return 0, ErrOverflow
	}
	return sum, nil
}
