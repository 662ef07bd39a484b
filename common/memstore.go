package common

import (
	"bytes"
	"sort"
)

// MemStore is an in-memory Store. It backs unit tests and short-lived
// simulations; durable deployments use the pebble package.
type MemStore struct {
	entries map[string][]byte
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]byte)}
}

func (m *MemStore) Get(key []byte) ([]byte, error) {
	v, ok := m.entries[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemStore) Put(key, value []byte) error {
	m.entries[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) Delete(key []byte) error {
	delete(m.entries, string(key))
	return nil
}

func (m *MemStore) NewIterator(prefix []byte) Iterator {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = append([]byte(nil), m.entries[k]...)
	}
	return &memIterator{keys: keys, values: values, pos: -1}
}

type memIterator struct {
	keys   []string
	values [][]byte
	pos    int
}

func (it *memIterator) Next() bool {
	if it.pos+1 >= len(it.keys) {
		return false
	}
	it.pos++
	return true
}

func (it *memIterator) Key() []byte   { return []byte(it.keys[it.pos]) }
func (it *memIterator) Value() []byte { return it.values[it.pos] }
func (it *memIterator) Error() error  { return nil }
func (it *memIterator) Release()      {}
