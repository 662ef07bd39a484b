package token

import (
	"errors"

	"github.com/ledgerlabs/ft-contract/ledger"
)

var (
	// ErrAlreadyInitialized is returned by New over a store that already
	// holds contract state.
	ErrAlreadyInitialized = errors.New("contract is already initialized")

	// ErrNotInitialized is returned by Load over a fresh store.
	ErrNotInitialized = errors.New("contract is not initialized")

	// ErrUnauthorized is returned when the caller may not act on the
	// targeted account.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrBadAttachedDeposit is returned when a state-changing call does not
	// attach exactly one minimal unit of the native token. The attachment
	// guards against accidental invocation, it is not a fee schedule.
	ErrBadAttachedDeposit = errors.New("requires exactly 1 attached minimal unit")

	// ErrInsufficientDeposit is returned when the attached payment does not
	// cover the storage bond, or a withdrawal exceeds the available storage
	// balance.
	ErrInsufficientDeposit = errors.New("insufficient storage deposit")

	// ErrReceiverNotRegistered is returned for transfers towards an account
	// without a ledger entry.
	ErrReceiverNotRegistered = errors.New("receiver is not registered")

	// ErrEmptyMessage is returned by FtTransferCall without a message
	// payload for the receiving contract.
	ErrEmptyMessage = errors.New("transfer call requires a message")

	// ErrInsufficientGas is returned when the gas allowance cannot cover the
	// notification call plus the reserve for refund processing.
	ErrInsufficientGas = errors.New("insufficient gas for transfer call")

	// ErrInvalidMetadata is returned by Metadata.Validate.
	ErrInvalidMetadata = errors.New("invalid token metadata")
)

// Ledger-level conditions surface unchanged so callers can branch on a
// single package.
var (
	ErrNotRegistered       = ledger.ErrNotRegistered
	ErrInsufficientBalance = ledger.ErrInsufficientBalance
	ErrOverflow            = ledger.ErrOverflow
	ErrNonZeroBalance      = ledger.ErrNonZeroBalance
	ErrZeroAmount          = ledger.ErrZeroAmount
	ErrSelfTransfer        = ledger.ErrSelfTransfer
)
