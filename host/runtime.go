// Package host stands in for the contract's execution environment: it
// authenticates callers, moves the native token for attached deposits and
// refunds, resolves receiver capabilities and drives the receipt queue of
// the extended transfer protocol.
//
// Calls to a contract instance are processed one at a time in receipt
// order, exactly as the platform serializes them: the resolve receipt of a
// transfer call is processed before any later call touches the ledger.
package host

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ledgerlabs/ft-contract/token"
)

// ErrInsufficientFunds is returned when a caller attaches more native
// tokens than their account holds.
var ErrInsufficientFunds = errors.New("insufficient native funds")

const (
	receiptNotify  = "notify"
	receiptResolve = "resolve"
)

type receipt struct {
	id      uuid.UUID
	kind    string
	pending *token.PendingTransfer
	used    uint64
	failed  bool
}

// Runtime hosts a single contract instance. It is serialized: one call runs
// at a time, matching the platform's execution model.
type Runtime struct {
	mu sync.Mutex

	contract  *token.Contract
	receivers map[string]token.TransferReceiver
	native    map[string]uint64
	queue     []receipt
	trace     []string
	log       *zap.Logger
}

func NewRuntime(c *token.Contract, log *zap.Logger) *Runtime {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runtime{
		contract:  c,
		receivers: make(map[string]token.TransferReceiver),
		native:    make(map[string]uint64),
		log:       log,
	}
}

// Contract exposes the hosted instance for read-only views.
func (r *Runtime) Contract() *token.Contract { return r.contract }

// RegisterReceiver declares that accountID is a contract exposing the
// transfer-notification capability. Accounts without a receiver are plain
// accounts: notifying them fails and the transfer call refunds in full.
func (r *Runtime) RegisterReceiver(accountID string, recv token.TransferReceiver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivers[accountID] = recv
}

// Fund credits native tokens to an account, the harness equivalent of an
// inbound native transfer.
func (r *Runtime) Fund(accountID string, amount uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.native[accountID] += amount
}

// NativeBalanceOf reports an account's native-token balance.
func (r *Runtime) NativeBalanceOf(accountID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.native[accountID]
}

// Trace returns the processed receipt log, oldest first.
func (r *Runtime) Trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.trace...)
}

// FtTransfer performs a simple transfer on behalf of caller.
func (r *Runtime) FtTransfer(caller string, deposit uint64, receiverID string, amount uint64, memo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.begin(caller, deposit, 0)
	if err != nil {
		return err
	}
	if err := r.contract.FtTransfer(ctx, receiverID, amount, memo); err != nil {
		r.abort(caller, deposit)
		return err
	}
	r.settle(caller, deposit, 0)
	return nil
}

// FtTransferCall performs an extended transfer end to end: phase one on the
// contract, the notification receipt against the receiver capability and
// the resolve receipt. It returns the amount that finally stayed
// transferred.
func (r *Runtime) FtTransferCall(caller string, deposit, prepaidGas uint64, receiverID string, amount uint64, memo, msg string, gasForCall uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.begin(caller, deposit, prepaidGas)
	if err != nil {
		return 0, err
	}
	pending, err := r.contract.FtTransferCall(ctx, receiverID, amount, memo, msg, gasForCall)
	if err != nil {
		r.abort(caller, deposit)
		return 0, err
	}
	r.settle(caller, deposit, 0)

	r.queue = append(r.queue, receipt{id: pending.ReceiptID, kind: receiptNotify, pending: pending})
	return r.processQueue()
}

// StorageDeposit registers an account, charging the bond from the attached
// native payment and refunding the rest.
func (r *Runtime) StorageDeposit(caller string, deposit uint64, accountID string, registrationOnly bool) (token.StorageBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.begin(caller, deposit, 0)
	if err != nil {
		return token.StorageBalance{}, err
	}
	balance, refund, err := r.contract.StorageDeposit(ctx, accountID, registrationOnly)
	if err != nil {
		r.abort(caller, deposit)
		return token.StorageBalance{}, err
	}
	r.settle(caller, deposit, refund)
	return balance, nil
}

// StorageWithdraw reports (and would pay out) excess storage deposit.
func (r *Runtime) StorageWithdraw(caller string, deposit uint64, amount *uint64) (token.StorageBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.begin(caller, deposit, 0)
	if err != nil {
		return token.StorageBalance{}, err
	}
	balance, err := r.contract.StorageWithdraw(ctx, amount)
	if err != nil {
		r.abort(caller, deposit)
		return token.StorageBalance{}, err
	}
	r.settle(caller, deposit, 0)
	return balance, nil
}

// StorageUnregister removes the caller's registration and pays the bond
// back from the contract's native holdings.
func (r *Runtime) StorageUnregister(caller string, deposit uint64, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, err := r.begin(caller, deposit, 0)
	if err != nil {
		return err
	}
	released, err := r.contract.StorageUnregister(ctx, force)
	if err != nil {
		r.abort(caller, deposit)
		return err
	}
	r.settle(caller, deposit, 0)

	contractID := r.contract.ContractID()
	if r.native[contractID] < released {
		return fmt.Errorf("%w: contract cannot pay back bond", ErrInsufficientFunds)
	}
	r.native[contractID] -= released
	r.native[caller] += released
	return nil
}

// begin withholds the attached deposit from the caller's native balance.
func (r *Runtime) begin(caller string, deposit, prepaidGas uint64) (token.CallContext, error) {
	if r.native[caller] < deposit {
		return token.CallContext{}, fmt.Errorf("%w: account %q attached %d", ErrInsufficientFunds, caller, deposit)
	}
	r.native[caller] -= deposit
	return token.CallContext{Caller: caller, AttachedDeposit: deposit, PrepaidGas: prepaidGas}, nil
}

// abort returns the withheld deposit after a failed call. Fatal errors
// discard the call entirely, attached payment included.
func (r *Runtime) abort(caller string, deposit uint64) {
	r.native[caller] += deposit
}

// settle pays the contract's refund back to the caller; whatever the
// contract kept accrues to its own native balance.
func (r *Runtime) settle(caller string, deposit, refund uint64) {
	if refund > deposit {
		refund = deposit
	}
	r.native[caller] += refund
	r.native[r.contract.ContractID()] += deposit - refund
}

// processQueue drains receipts in FIFO order. The notify receipt invokes
// the receiver capability when the account exposes one; a plain account or
// a failing receiver marks the call failed. The resolve receipt feeds the
// outcome back into the contract.
func (r *Runtime) processQueue() (uint64, error) {
	var (
		net     uint64
		lastErr error
	)
	for len(r.queue) > 0 {
		rc := r.queue[0]
		r.queue = r.queue[1:]

		switch rc.kind {
		case receiptNotify:
			used, failed := r.notify(rc.pending)
			r.trace = append(r.trace, fmt.Sprintf("notify %s -> %s", rc.id, rc.pending.ReceiverID))
			r.queue = append(r.queue, receipt{
				id:      rc.id,
				kind:    receiptResolve,
				pending: rc.pending,
				used:    used,
				failed:  failed,
			})
		case receiptResolve:
			r.trace = append(r.trace, fmt.Sprintf("resolve %s", rc.id))
			n, err := r.contract.FtResolveTransfer(rc.pending, rc.used, rc.failed)
			if err != nil {
				lastErr = err
				continue
			}
			net = n
		}
	}
	return net, lastErr
}

func (r *Runtime) notify(p *token.PendingTransfer) (used uint64, failed bool) {
	recv, ok := r.receivers[p.ReceiverID]
	if !ok {
		r.log.Debug("receiver is not a contract, transfer call fails",
			zap.String("receiver", p.ReceiverID))
		return 0, true
	}
	used, err := recv.FtOnTransfer(p.SenderID, p.Amount, p.Msg)
	if err != nil {
		r.log.Debug("receiver rejected transfer call",
			zap.String("receiver", p.ReceiverID), zap.Error(err))
		return 0, true
	}
	return used, false
}
