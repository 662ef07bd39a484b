package token

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"
)

// Event lines follow the fixed indexable schema
//
//	EVENT_JSON:{"standard":...,"version":...,"event":...,"data":[...]}
//
// Consumers parse these records; the shape must stay stable across contract
// versions.
const (
	eventPrefix = "EVENT_JSON:"

	standardToken   = "nep141"
	standardStorage = "nep145"
	eventsVersion   = "1.0.0"

	// Memo markers on refund legs of a transfer call.
	memoRefund          = "refund"
	memoRefundTruncated = "refund_truncated"
)

// Notifier consumes emitted event lines. The platform persists them to the
// transaction log; off-chain indexers parse them.
type Notifier interface {
	Notify(line string)
}

type zapNotifier struct {
	log *zap.Logger
}

// NewZapNotifier writes event lines through a zap logger.
func NewZapNotifier(log *zap.Logger) Notifier {
	return zapNotifier{log: log}
}

func (n zapNotifier) Notify(line string) {
	n.log.Info(line)
}

// MemoryNotifier collects event lines. Used by tests and the host harness.
type MemoryNotifier struct {
	Lines []string
}

func (n *MemoryNotifier) Notify(line string) {
	n.Lines = append(n.Lines, line)
}

type eventEnvelope struct {
	Standard string      `json:"standard"`
	Version  string      `json:"version"`
	Event    string      `json:"event"`
	Data     interface{} `json:"data"`
}

type mintEventData struct {
	OwnerID string `json:"owner_id"`
	Amount  string `json:"amount"`
	Memo    string `json:"memo,omitempty"`
}

type transferEventData struct {
	OldOwnerID string `json:"old_owner_id"`
	NewOwnerID string `json:"new_owner_id"`
	Amount     string `json:"amount"`
	Memo       string `json:"memo,omitempty"`
}

type storageEventData struct {
	AccountID string `json:"account_id"`
}

func (c *Contract) emit(standard, event string, data interface{}) {
	raw, err := json.Marshal(eventEnvelope{
		Standard: standard,
		Version:  eventsVersion,
		Event:    event,
		Data:     data,
	})
	if err != nil {
		c.log.Error("event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}
	c.notifier.Notify(eventPrefix + string(raw))
}

func (c *Contract) emitMint(ownerID string, amount uint64, memo string) {
	c.emit(standardToken, "ft_mint", []mintEventData{{
		OwnerID: ownerID,
		Amount:  strconv.FormatUint(amount, 10),
		Memo:    memo,
	}})
}

func (c *Contract) emitTransfer(from, to string, amount uint64, memo string) {
	c.emit(standardToken, "ft_transfer", []transferEventData{{
		OldOwnerID: from,
		NewOwnerID: to,
		Amount:     strconv.FormatUint(amount, 10),
		Memo:       memo,
	}})
}

func (c *Contract) emitStorageRegister(accountID string) {
	c.emit(standardStorage, "storage_register", []storageEventData{{AccountID: accountID}})
}

func (c *Contract) emitStorageUnregister(accountID string) {
	c.emit(standardStorage, "storage_unregister", []storageEventData{{AccountID: accountID}})
}
