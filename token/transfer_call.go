package token

import (
	"math/bits"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gas accounting for the extended transfer. Units are the platform's gas
// units; the reserve is withheld from the allowance so refund processing can
// always run after the notification call.
const (
	// MinGasForOnTransfer is the smallest allowance accepted for the
	// receiver notification call.
	MinGasForOnTransfer uint64 = 10_000_000_000_000

	// GasReserveForResolve is kept back for the resolve step.
	GasReserveForResolve uint64 = 5_000_000_000_000
)

// TransferReceiver is the capability a receiving contract may expose. The
// core never assumes an account implements it; the platform boundary
// resolves the account and reports either the declared used amount or that
// the call failed. Both outcomes feed FtResolveTransfer explicitly.
type TransferReceiver interface {
	// FtOnTransfer is invoked with the already-credited amount and the
	// sender's message. It returns how much of the amount the receiver
	// used; the remainder is refunded.
	FtOnTransfer(senderID string, amount uint64, msg string) (used uint64, err error)
}

// PendingTransfer bridges the two phases of an extended transfer. It exists
// only between issuing the notification and processing its result; it is
// carried by the platform, never persisted.
type PendingTransfer struct {
	ReceiptID  uuid.UUID
	SenderID   string
	ReceiverID string
	Amount     uint64
	Msg        string
	GasForCall uint64
}

// FtTransferCall runs phase one of the extended transfer: validates like
// FtTransfer (plus a non-empty message and the gas allowance), applies the
// debit/credit optimistically and returns the pending record the platform
// uses to notify the receiver and later invoke FtResolveTransfer.
//
// Phase one commits. There is no rollback once the debit executed; every
// failure afterwards routes through the refund path of the resolve step.
func (c *Contract) FtTransferCall(ctx CallContext, receiverID string, amount uint64, memo, msg string, gasForCall uint64) (*PendingTransfer, error) {
	if err := ctx.requireSecurityDeposit(); err != nil {
		return nil, err
	}
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if gasForCall < MinGasForOnTransfer {
		return nil, ErrInsufficientGas
	}
	required, carry := bits.Add64(gasForCall, GasReserveForResolve, 0)
	if carry != 0 || ctx.PrepaidGas < required {
		return nil, ErrInsufficientGas
	}

	if err := c.transfer(ctx.Caller, receiverID, amount); err != nil {
		return nil, err
	}
	c.emitTransfer(ctx.Caller, receiverID, amount, memo)

	p := &PendingTransfer{
		ReceiptID:  uuid.New(),
		SenderID:   ctx.Caller,
		ReceiverID: receiverID,
		Amount:     amount,
		Msg:        msg,
		GasForCall: gasForCall,
	}
	c.log.Debug("transfer call initiated",
		zap.String("receipt", p.ReceiptID.String()),
		zap.String("sender", p.SenderID),
		zap.String("receiver", p.ReceiverID),
		zap.Uint64("amount", amount))
	return p, nil
}

// FtResolveTransfer is the callback entry point for the notification result.
// Only the platform invokes it, once per pending transfer, after the
// receiver declared the used amount or the notification call failed.
//
// The unused remainder moves back from receiver to sender, clamped to what
// the receiver still holds: balances may have changed between the phases, so
// the refund is recomputed against current state and is best-effort. A
// truncated refund is reported in the emitted event, not as an error.
// Returns the amount that finally stayed transferred.
func (c *Contract) FtResolveTransfer(p *PendingTransfer, used uint64, callFailed bool) (uint64, error) {
	if callFailed {
		used = 0
	}
	if used > p.Amount {
		used = p.Amount
	}
	refund := p.Amount - used
	if refund == 0 {
		return p.Amount, nil
	}

	available, registered, err := c.ledger.BalanceOf(p.ReceiverID)
	if err != nil {
		return 0, err
	}
	if !registered {
		available = 0
	}
	actual := refund
	if available < actual {
		actual = available
	}

	if actual > 0 {
		// The sender may have unregistered between the phases; the refund
		// then goes to the custodial account, same as a forced unregister
		// sweep.
		target := p.SenderID
		if ok, err := c.ledger.IsRegistered(target); err != nil {
			return 0, err
		} else if !ok {
			target = c.contractID
		}
		memo := memoRefund
		if actual < refund {
			memo = memoRefundTruncated
		}
		if target != p.ReceiverID {
			if err := c.ledger.Transfer(p.ReceiverID, target, actual); err != nil {
				return 0, err
			}
			c.emitTransfer(p.ReceiverID, target, actual, memo)
		}
	}

	if actual < refund {
		c.log.Warn("refund truncated",
			zap.String("receipt", p.ReceiptID.String()),
			zap.Uint64("wanted", refund),
			zap.Uint64("refunded", actual))
	}
	return p.Amount - actual, nil
}
