package token

import (
	"go.uber.org/zap"
)

// FtTransfer moves amount from the caller to receiverID. The debit is
// strictly self-initiated: the sender is always the authenticated caller,
// there are no allowances. Requires the one-unit security deposit.
//
// The withdraw/deposit pair is applied as a single state transition; a
// failure in any validation leaves both balances untouched.
func (c *Contract) FtTransfer(ctx CallContext, receiverID string, amount uint64, memo string) error {
	if err := ctx.requireSecurityDeposit(); err != nil {
		return err
	}
	if err := c.transfer(ctx.Caller, receiverID, amount); err != nil {
		return err
	}

	c.emitTransfer(ctx.Caller, receiverID, amount, memo)
	c.log.Debug("transfer",
		zap.String("sender", ctx.Caller),
		zap.String("receiver", receiverID),
		zap.Uint64("amount", amount))
	return nil
}

// transfer validates and applies the balance move shared by the simple and
// extended transfer paths.
func (c *Contract) transfer(senderID, receiverID string, amount uint64) error {
	if receiverID == senderID {
		return ErrSelfTransfer
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	registered, err := c.ledger.IsRegistered(receiverID)
	if err != nil {
		return err
	}
	if !registered {
		return ErrReceiverNotRegistered
	}
	return c.ledger.Transfer(senderID, receiverID, amount)
}
