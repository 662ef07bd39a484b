package token

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerlabs/ft-contract/common"
	"github.com/ledgerlabs/ft-contract/host"
	ft "github.com/ledgerlabs/ft-contract/token"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := ft.New(common.NewMemStore(), "ft.contract", "owner", 1_000_000, ft.Metadata{
		Spec:     ft.MetadataSpec,
		Name:     "Example Token",
		Symbol:   "EXT",
		Decimals: 18,
	})
	require.NoError(t, err)

	rt := host.NewRuntime(c, nil)
	rt.Fund("owner", 10_000_000)
	rt.Fund("bob", 10_000_000)
	return NewClient(rt)
}

func dispatch(t *testing.T, cl *Client, caller string, deposit uint64, method, args string) json.RawMessage {
	t.Helper()
	out, err := cl.Dispatch(Call{
		Caller:     caller,
		Deposit:    deposit,
		PrepaidGas: ft.MinGasForOnTransfer + ft.GasReserveForResolve,
		Method:     method,
		Args:       json.RawMessage(args),
	})
	require.NoError(t, err)
	return out
}

func TestDispatchTransferFlow(t *testing.T) {
	cl := newTestClient(t)

	out := dispatch(t, cl, "bob", ft.StorageBond, "storage_deposit", `{}`)
	require.JSONEq(t, `{"total":"1280000","available":"0"}`, string(out))

	dispatch(t, cl, "owner", 1, "ft_transfer", `{"receiver_id":"bob","amount":"500"}`)

	out = dispatch(t, cl, "owner", 0, "ft_balance_of", `{"account_id":"owner"}`)
	require.Equal(t, `"999500"`, string(out))
	out = dispatch(t, cl, "owner", 0, "ft_balance_of", `{"account_id":"bob"}`)
	require.Equal(t, `"500"`, string(out))
}

func TestDispatchBalanceOfUnregistered(t *testing.T) {
	cl := newTestClient(t)
	out := dispatch(t, cl, "owner", 0, "ft_balance_of", `{"account_id":"ghost"}`)
	require.Equal(t, "null", string(out))
}

func TestDispatchTotalSupplyAndMetadata(t *testing.T) {
	cl := newTestClient(t)

	out := dispatch(t, cl, "owner", 0, "ft_total_supply", "")
	require.Equal(t, `"1000000"`, string(out))

	out = dispatch(t, cl, "owner", 0, "ft_metadata", "")
	require.JSONEq(t,
		`{"spec":"ft-1.0.0","name":"Example Token","symbol":"EXT","decimals":18}`,
		string(out))
}

func TestDispatchStorageViews(t *testing.T) {
	cl := newTestClient(t)

	out := dispatch(t, cl, "owner", 0, "storage_balance_bounds", "")
	require.JSONEq(t, `{"min":"1280000","max":"1280000"}`, string(out))

	out = dispatch(t, cl, "owner", 0, "storage_balance_of", `{"account_id":"ghost"}`)
	require.Equal(t, "null", string(out))

	out = dispatch(t, cl, "owner", 0, "storage_balance_of", `{"account_id":"owner"}`)
	require.JSONEq(t, `{"total":"1280000","available":"0"}`, string(out))
}

func TestDispatchTransferCall(t *testing.T) {
	cl := newTestClient(t)
	dispatch(t, cl, "bob", ft.StorageBond, "storage_deposit", `{}`)

	// bob exposes no receiver capability: full refund, net zero.
	out := dispatch(t, cl, "owner", 1, "ft_transfer_call",
		`{"receiver_id":"bob","amount":"400","msg":"ping","gas":10000000000000}`)
	require.Equal(t, `"0"`, string(out))
}

func TestDispatchErrors(t *testing.T) {
	cl := newTestClient(t)

	_, err := cl.Dispatch(Call{Caller: "owner", Method: "ft_mint"})
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = cl.Dispatch(Call{
		Caller: "owner", Deposit: 1, Method: "ft_transfer",
		Args: json.RawMessage(`{"receiver_id":"bob","amount":42}`),
	})
	require.Error(t, err)

	_, err = cl.Dispatch(Call{
		Caller: "owner", Deposit: 1, Method: "ft_transfer",
		Args: json.RawMessage(`{"receiver_id":"ghost","amount":"1"}`),
	})
	require.ErrorIs(t, err, ft.ErrReceiverNotRegistered)
}

func TestAmountJSON(t *testing.T) {
	raw, err := json.Marshal(Amount(18446744073709551615))
	require.NoError(t, err)
	require.Equal(t, `"18446744073709551615"`, string(raw))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"77"`), &a))
	require.EqualValues(t, 77, a)

	require.Error(t, json.Unmarshal([]byte(`77`), &a))
	require.Error(t, json.Unmarshal([]byte(`"-1"`), &a))
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &a))
}
