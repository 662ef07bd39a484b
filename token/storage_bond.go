package token

import (
	"fmt"

	"go.uber.org/zap"
)

// The storage bond offsets the byte cost of holding a ledger entry. It is a
// fixed price: key, record and bookkeeping round up to a constant footprint.
const (
	// storageByteCost is the native-token price of one stored byte.
	storageByteCost uint64 = 10_000

	// accountStorageBytes is the charged footprint of one ledger entry.
	accountStorageBytes uint64 = 128

	// StorageBond is the deposit required to register an account.
	StorageBond = accountStorageBytes * storageByteCost
)

// StorageBalance reports an account's storage deposit. Excess attached
// payments are refunded immediately at deposit time, so Available is always
// zero for a registered account.
type StorageBalance struct {
	Total     uint64
	Available uint64
}

// StorageBalanceBounds returns the minimum and maximum accepted bond. They
// are equal: the bond is a fixed price.
func (c *Contract) StorageBalanceBounds() (min, max uint64) {
	return StorageBond, StorageBond
}

// StorageBalanceOf reports the bond held for an account, and whether the
// account is registered at all.
func (c *Contract) StorageBalanceOf(accountID string) (StorageBalance, bool, error) {
	registered, err := c.ledger.IsRegistered(accountID)
	if err != nil || !registered {
		return StorageBalance{}, false, err
	}
	return StorageBalance{Total: StorageBond}, true, nil
}

// StorageDeposit registers accountID (the caller when empty) by charging the
// bond from the attached payment. The returned refund is the part of the
// payment the contract does not keep: everything above the bond, or the full
// payment when the account was already registered. The second call is a
// pure refund, the registration set does not change.
//
// registrationOnly is accepted for interface compatibility; deposits never
// retain more than the bond, so it does not change behavior.
func (c *Contract) StorageDeposit(ctx CallContext, accountID string, registrationOnly bool) (StorageBalance, uint64, error) {
	target := accountID
	if target == "" {
		target = ctx.Caller
	}

	registered, err := c.ledger.IsRegistered(target)
	if err != nil {
		return StorageBalance{}, 0, err
	}
	if registered {
		c.log.Debug("storage deposit for registered account, refunding",
			zap.String("account", target),
			zap.Uint64("refund", ctx.AttachedDeposit))
		return StorageBalance{Total: StorageBond}, ctx.AttachedDeposit, nil
	}

	if ctx.AttachedDeposit < StorageBond {
		return StorageBalance{}, 0, fmt.Errorf("%w: attached %d, bond is %d",
			ErrInsufficientDeposit, ctx.AttachedDeposit, StorageBond)
	}
	if _, err := c.ledger.Register(target); err != nil {
		return StorageBalance{}, 0, err
	}

	c.emitStorageRegister(target)
	c.log.Info("account registered", zap.String("account", target))
	return StorageBalance{Total: StorageBond}, ctx.AttachedDeposit - StorageBond, nil
}

// StorageWithdraw returns excess deposited funds beyond the bond. Since
// excess is refunded at deposit time, the available balance is always zero:
// a positive amount fails, a nil amount reports the current balance with
// nothing to pay out. Requires registration and the one-unit security
// deposit.
func (c *Contract) StorageWithdraw(ctx CallContext, amount *uint64) (StorageBalance, error) {
	if err := ctx.requireSecurityDeposit(); err != nil {
		return StorageBalance{}, err
	}
	registered, err := c.ledger.IsRegistered(ctx.Caller)
	if err != nil {
		return StorageBalance{}, err
	}
	if !registered {
		return StorageBalance{}, fmt.Errorf("storage withdraw: %w", ErrNotRegistered)
	}
	if amount != nil && *amount > 0 {
		return StorageBalance{}, fmt.Errorf("%w: available storage balance is zero", ErrInsufficientDeposit)
	}
	return StorageBalance{Total: StorageBond}, nil
}

// StorageUnregister removes the caller from the registration set and returns
// the bond. A non-empty account is rejected with ErrNonZeroBalance unless
// force is set, in which case the remaining balance is swept to the
// contract's custodial account. The sweep keeps the conservation invariant
// intact and never touches the immutable total supply. Requires the one-unit
// security deposit.
func (c *Contract) StorageUnregister(ctx CallContext, force bool) (uint64, error) {
	if err := ctx.requireSecurityDeposit(); err != nil {
		return 0, err
	}
	if ctx.Caller == c.contractID {
		return 0, fmt.Errorf("%w: custodial account cannot unregister", ErrUnauthorized)
	}

	balance, registered, err := c.ledger.BalanceOf(ctx.Caller)
	if err != nil {
		return 0, err
	}
	if !registered {
		return 0, fmt.Errorf("storage unregister: %w", ErrNotRegistered)
	}
	if balance != 0 {
		if !force {
			return 0, fmt.Errorf("storage unregister: %w", ErrNonZeroBalance)
		}
		if err := c.ledger.Transfer(ctx.Caller, c.contractID, balance); err != nil {
			return 0, err
		}
		c.emitTransfer(ctx.Caller, c.contractID, balance, "force unregister sweep")
		c.log.Warn("force unregister swept balance",
			zap.String("account", ctx.Caller),
			zap.Uint64("amount", balance))
	}

	if err := c.ledger.Unregister(ctx.Caller); err != nil {
		return 0, err
	}
	c.emitStorageUnregister(ctx.Caller)
	c.log.Info("account unregistered", zap.String("account", ctx.Caller))
	return StorageBond, nil
}
