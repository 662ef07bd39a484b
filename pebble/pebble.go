// Package pebble provides a durable common.Store backed by cockroachdb/pebble.
package pebble

import (
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgerlabs/ft-contract/common"
)

// Database implements common.Store on top of a pebble instance.
type Database struct {
	db      *pebble.DB
	metrics *metrics
}

var _ common.Store = (*Database)(nil)

// New opens (or creates) a database at path. A nil registerer disables
// metrics registration.
func New(path string, reg prometheus.Registerer) (*Database, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(reg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Database{db: db, metrics: m}, nil
}

func (d *Database) Get(key []byte) ([]byte, error) {
	d.metrics.reads.Inc()
	v, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		d.metrics.readMisses.Inc()
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Database) Put(key, value []byte) error {
	d.metrics.writes.Inc()
	return d.db.Set(key, value, pebble.Sync)
}

func (d *Database) Delete(key []byte) error {
	d.metrics.deletes.Inc()
	return d.db.Delete(key, pebble.Sync)
}

func (d *Database) NewIterator(prefix []byte) common.Iterator {
	it, err := d.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return &iterator{err: err}
	}
	return &iterator{it: it, first: true}
}

func (d *Database) Close() error {
	return d.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix, or nil when no such key exists (prefix of all 0xff).
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

type iterator struct {
	it    *pebble.Iterator
	first bool
	err   error
}

func (i *iterator) Next() bool {
	if i.it == nil {
		return false
	}
	if i.first {
		i.first = false
		return i.it.First()
	}
	return i.it.Next()
}

func (i *iterator) Key() []byte {
	return append([]byte(nil), i.it.Key()...)
}

func (i *iterator) Value() []byte {
	return append([]byte(nil), i.it.Value()...)
}

func (i *iterator) Error() error {
	if i.err != nil {
		return i.err
	}
	if i.it == nil {
		return nil
	}
	return i.it.Error()
}

func (i *iterator) Release() {
	if i.it != nil {
		_ = i.it.Close()
	}
}
