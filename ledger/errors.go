package ledger

import "errors"

var (
	// ErrNotRegistered is returned when an operation touches an account that
	// has no ledger entry. A registered account with a zero balance is a
	// different, valid state.
	ErrNotRegistered = errors.New("account is not registered")

	// ErrInsufficientBalance is returned by withdrawals exceeding the
	// account's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOverflow is returned when a deposit would overflow the balance or
	// break the conservation bound against total supply.
	ErrOverflow = errors.New("balance overflow")

	// ErrNonZeroBalance is returned by Unregister for an account still
	// holding tokens.
	ErrNonZeroBalance = errors.New("account balance is not zero")

	// ErrZeroAmount is returned for transfers of zero tokens.
	ErrZeroAmount = errors.New("amount must be positive")

	// ErrSelfTransfer is returned when sender and receiver are the same
	// account.
	ErrSelfTransfer = errors.New("sender and receiver are the same account")
)
