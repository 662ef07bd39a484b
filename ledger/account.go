package ledger

import (
	"fmt"

	"github.com/ledgerlabs/ft-contract/common"
)

// accountPrefix starts every ledger entry key. The rest of the key is the
// raw account identifier; the platform validates identifier syntax, the
// ledger treats it as opaque bytes.
const accountPrefix = 'a'

// Account is the stored per-account record. Presence of the record is the
// registration state: an account has an entry if and only if it paid the
// storage bond.
type Account struct {
	Balance uint64
}

func accountKey(id string) []byte {
	k := make([]byte, 0, 1+len(id))
	k = append(k, accountPrefix)
	return append(k, id...)
}

func (l *Ledger) getAccount(id string) (Account, bool, error) {
	var acc Account
	ok, err := common.GetSerialized(l.ctx, accountKey(id), &acc)
	if err != nil {
		return Account{}, false, fmt.Errorf("load account %q: %w", id, err)
	}
	return acc, ok, nil
}

func (l *Ledger) putAccount(id string, acc Account) error {
	if err := common.SetSerialized(l.ctx, accountKey(id), acc); err != nil {
		return fmt.Errorf("store account %q: %w", id, err)
	}
	return nil
}
