package token

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ledgerlabs/ft-contract/common"
	"github.com/ledgerlabs/ft-contract/ledger"
)

// Storage keys of the singleton records. Account entries live under the
// ledger's own prefix.
var (
	infoKey     = []byte{'i'}
	supplyKey   = []byte{'s'}
	metadataKey = []byte{'m'}
)

// contractInfo is the one-time initialization record. Its presence is the
// initialization guard.
type contractInfo struct {
	ContractID string
	OwnerID    string
	Version    uint64
}

// securityDeposit is the attached payment required on state-changing calls:
// exactly one minimal native unit, guarding against accidental invocation.
const securityDeposit uint64 = 1

// CallContext carries the platform-authenticated facts about the current
// call: who signed it, what payment it attached and how much gas it prepaid.
// Operations verify the debited account against Caller; nothing else
// establishes identity.
type CallContext struct {
	Caller          string
	AttachedDeposit uint64
	PrepaidGas      uint64
}

func (ctx CallContext) requireSecurityDeposit() error {
	if ctx.AttachedDeposit != securityDeposit {
		return ErrBadAttachedDeposit
	}
	return nil
}

// Contract is the fungible-token contract instance: the balance ledger, the
// registration table and the fixed metadata, all over one store. The
// platform serializes calls to an instance; Contract performs no internal
// locking.
type Contract struct {
	ctx         common.Context
	ledger      *ledger.Ledger
	meta        Metadata
	totalSupply uint64
	contractID  string
	ownerID     string

	notifier Notifier
	log      *zap.Logger
}

// Option configures a Contract on construction.
type Option func(*Contract)

// WithLogger sets the operational logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Contract) { c.log = log }
}

// WithNotifier sets the event sink. Defaults to writing event lines through
// the logger.
func WithNotifier(n Notifier) Option {
	return func(c *Contract) { c.notifier = n }
}

// New initializes a contract over a fresh store: fixes total supply and
// metadata permanently, registers the contract's own custodial account and
// the owner, and credits the owner with the full supply. It runs exactly
// once per store; any further attempt fails with ErrAlreadyInitialized.
func New(store common.Store, contractID, ownerID string, totalSupply uint64, meta Metadata, opts ...Option) (*Contract, error) {
	ctx := common.NewContext(store)

	if _, err := ctx.Get(infoKey); err == nil {
		return nil, ErrAlreadyInitialized
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if contractID == "" || ownerID == "" {
		return nil, fmt.Errorf("%w: empty account identifier", ErrUnauthorized)
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	c := newContract(ctx, contractID, ownerID, totalSupply, meta, opts)

	if err := common.SetSerialized(ctx, infoKey, contractInfo{
		ContractID: contractID,
		OwnerID:    ownerID,
		Version:    common.Version,
	}); err != nil {
		return nil, err
	}
	if err := common.SetSerialized(ctx, supplyKey, totalSupply); err != nil {
		return nil, err
	}
	if err := common.SetSerialized(ctx, metadataKey, meta); err != nil {
		return nil, err
	}

	// The custodial account receives swept balances of force-unregistered
	// accounts. Init-time registrations are bond-exempt: the deployer funds
	// the contract's storage.
	if _, err := c.ledger.Register(contractID); err != nil {
		return nil, err
	}
	if _, err := c.ledger.Register(ownerID); err != nil {
		return nil, err
	}
	if totalSupply > 0 {
		if err := c.ledger.Deposit(ownerID, totalSupply); err != nil {
			return nil, err
		}
	}

	c.emitMint(ownerID, totalSupply, "Initial token supply is minted")
	c.log.Info("contract initialized",
		zap.String("contract", contractID),
		zap.String("owner", ownerID),
		zap.Uint64("total_supply", totalSupply))
	return c, nil
}

// Load reopens an initialized store, for example after a process restart.
func Load(store common.Store, opts ...Option) (*Contract, error) {
	ctx := common.NewContext(store)

	var info contractInfo
	ok, err := common.GetSerialized(ctx, infoKey, &info)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotInitialized
	}
	if err := common.CheckVersion(info.Version); err != nil {
		return nil, err
	}

	var supply uint64
	if _, err := common.GetSerialized(ctx, supplyKey, &supply); err != nil {
		return nil, err
	}
	var meta Metadata
	if _, err := common.GetSerialized(ctx, metadataKey, &meta); err != nil {
		return nil, err
	}

	return newContract(ctx, info.ContractID, info.OwnerID, supply, meta, opts), nil
}

func newContract(ctx common.Context, contractID, ownerID string, totalSupply uint64, meta Metadata, opts []Option) *Contract {
	c := &Contract{
		ctx:         ctx,
		ledger:      ledger.New(ctx, totalSupply),
		meta:        meta,
		totalSupply: totalSupply,
		contractID:  contractID,
		ownerID:     ownerID,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.notifier == nil {
		c.notifier = NewZapNotifier(c.log)
	}
	return c
}

// ContractID returns the contract's own (custodial) account identifier.
func (c *Contract) ContractID() string { return c.contractID }

// OwnerID returns the account credited with the initial supply.
func (c *Contract) OwnerID() string { return c.ownerID }

// FtTotalSupply returns the immutable total supply fixed at initialization.
func (c *Contract) FtTotalSupply() uint64 { return c.totalSupply }

// FtMetadata returns the fixed metadata record.
func (c *Contract) FtMetadata() Metadata { return c.meta }

// FtBalanceOf returns the account balance and whether the account is
// registered at all, so callers can tell a held zero balance from absence.
func (c *Contract) FtBalanceOf(accountID string) (uint64, bool, error) {
	return c.ledger.BalanceOf(accountID)
}

// Accounts lists all registered accounts.
func (c *Contract) Accounts() ([]string, error) {
	return c.ledger.Accounts()
}

// CheckSupplyInvariant verifies conservation: the balances of all registered
// accounts sum to exactly the total supply.
func (c *Contract) CheckSupplyInvariant() error {
	sum, err := c.ledger.TotalBalance()
	if err != nil {
		return err
	}
	if sum != c.totalSupply {
		return fmt.Errorf("supply invariant violated: balances sum to %d, total supply is %d", sum, c.totalSupply)
	}
	return nil
}
