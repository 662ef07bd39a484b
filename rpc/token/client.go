// Package token contains the JSON call-surface bindings of the token
// contract: the platform ABI mapping method names with JSON arguments onto
// contract operations. The resolve callback is deliberately absent: only
// the platform invokes it.
package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ledgerlabs/ft-contract/host"
)

// ErrUnknownMethod is returned for a method name outside the exposed
// surface.
var ErrUnknownMethod = errors.New("unknown method")

// Call is one inbound contract invocation.
type Call struct {
	Caller     string
	Deposit    uint64
	PrepaidGas uint64
	Method     string
	Args       json.RawMessage
}

// Client dispatches ABI calls into a hosted contract instance.
type Client struct {
	rt *host.Runtime
}

func NewClient(rt *host.Runtime) *Client {
	return &Client{rt: rt}
}

type transferArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     Amount `json:"amount"`
	Memo       string `json:"memo,omitempty"`
}

type transferCallArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     Amount `json:"amount"`
	Memo       string `json:"memo,omitempty"`
	Msg        string `json:"msg"`
	Gas        uint64 `json:"gas"`
}

type accountArgs struct {
	AccountID string `json:"account_id"`
}

type storageDepositArgs struct {
	AccountID        string `json:"account_id,omitempty"`
	RegistrationOnly bool   `json:"registration_only,omitempty"`
}

type storageWithdrawArgs struct {
	Amount *Amount `json:"amount,omitempty"`
}

type storageUnregisterArgs struct {
	Force bool `json:"force,omitempty"`
}

type storageBalanceView struct {
	Total     Amount `json:"total"`
	Available Amount `json:"available"`
}

type storageBoundsView struct {
	Min Amount `json:"min"`
	Max Amount `json:"max"`
}

type metadataView struct {
	Spec          string `json:"spec"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Icon          string `json:"icon,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceHash string `json:"reference_hash,omitempty"`
	Decimals      uint8  `json:"decimals"`
}

// Dispatch routes a call. Results are JSON; amounts are base-10 strings.
// ft_balance_of and storage_balance_of return null for an unregistered
// account, which is the callers' way to tell absence from a held zero
// balance.
func (cl *Client) Dispatch(call Call) (json.RawMessage, error) {
	c := cl.rt.Contract()

	switch call.Method {
	case "ft_transfer":
		var args transferArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		err := cl.rt.FtTransfer(call.Caller, call.Deposit, args.ReceiverID, uint64(args.Amount), args.Memo)
		return nil, err

	case "ft_transfer_call":
		var args transferCallArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		net, err := cl.rt.FtTransferCall(call.Caller, call.Deposit, call.PrepaidGas,
			args.ReceiverID, uint64(args.Amount), args.Memo, args.Msg, args.Gas)
		if err != nil {
			return nil, err
		}
		return marshalResult(Amount(net))

	case "ft_balance_of":
		var args accountArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		balance, registered, err := c.FtBalanceOf(args.AccountID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return json.RawMessage("null"), nil
		}
		return marshalResult(Amount(balance))

	case "ft_total_supply":
		return marshalResult(Amount(c.FtTotalSupply()))

	case "ft_metadata":
		m := c.FtMetadata()
		return marshalResult(metadataView{
			Spec:          m.Spec,
			Name:          m.Name,
			Symbol:        m.Symbol,
			Icon:          m.Icon,
			Reference:     m.Reference,
			ReferenceHash: m.ReferenceHashString(),
			Decimals:      m.Decimals,
		})

	case "storage_deposit":
		var args storageDepositArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		balance, err := cl.rt.StorageDeposit(call.Caller, call.Deposit, args.AccountID, args.RegistrationOnly)
		if err != nil {
			return nil, err
		}
		return marshalResult(storageBalanceView{
			Total:     Amount(balance.Total),
			Available: Amount(balance.Available),
		})

	case "storage_withdraw":
		var args storageWithdrawArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		var amount *uint64
		if args.Amount != nil {
			v := uint64(*args.Amount)
			amount = &v
		}
		balance, err := cl.rt.StorageWithdraw(call.Caller, call.Deposit, amount)
		if err != nil {
			return nil, err
		}
		return marshalResult(storageBalanceView{
			Total:     Amount(balance.Total),
			Available: Amount(balance.Available),
		})

	case "storage_unregister":
		var args storageUnregisterArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		if err := cl.rt.StorageUnregister(call.Caller, call.Deposit, args.Force); err != nil {
			return nil, err
		}
		return marshalResult(true)

	case "storage_balance_bounds":
		min, max := c.StorageBalanceBounds()
		return marshalResult(storageBoundsView{Min: Amount(min), Max: Amount(max)})

	case "storage_balance_of":
		var args accountArgs
		if err := unmarshalArgs(call.Args, &args); err != nil {
			return nil, err
		}
		balance, registered, err := c.StorageBalanceOf(args.AccountID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return json.RawMessage("null"), nil
		}
		return marshalResult(storageBalanceView{
			Total:     Amount(balance.Total),
			Available: Amount(balance.Available),
		})

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, call.Method)
	}
}

func unmarshalArgs(raw json.RawMessage, into interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("bad arguments: %w", err)
	}
	return nil
}

func marshalResult(v interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
