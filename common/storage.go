package common

import (
	"errors"

	"github.com/near/borsh-go"
)

var (
	// ErrNotFound is returned by Store.Get for an absent key.
	ErrNotFound = errors.New("key not found")

	// ErrReadOnly is returned on any mutation through a read-only context.
	ErrReadOnly = errors.New("storage context is read-only")
)

// Store is the key-value storage a contract instance owns. Implementations
// must return copies the caller may retain and iterate keys in ascending
// byte order.
type Store interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	NewIterator(prefix []byte) Iterator
}

// Iterator walks a key range. Release must be called when done.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Context wraps a Store with an access mode. Read paths of the contract take
// a read-only context so a mutation slipping into a view method fails loudly.
type Context struct {
	store    Store
	readOnly bool
}

func NewContext(s Store) Context {
	return Context{store: s}
}

func NewReadOnlyContext(s Store) Context {
	return Context{store: s, readOnly: true}
}

// ReadOnly returns a read-only view over the same store.
func (c Context) ReadOnly() Context {
	return Context{store: c.store, readOnly: true}
}

func (c Context) Get(key []byte) ([]byte, error) {
	return c.store.Get(key)
}

func (c Context) Put(key, value []byte) error {
	if c.readOnly {
		return ErrReadOnly
	}
	return c.store.Put(key, value)
}

func (c Context) Delete(key []byte) error {
	if c.readOnly {
		return ErrReadOnly
	}
	return c.store.Delete(key)
}

func (c Context) NewIterator(prefix []byte) Iterator {
	return c.store.NewIterator(prefix)
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx Context, key []byte, value interface{}) error {
	data, err := borsh.Serialize(value)
	if err != nil {
		return err
	}
	return ctx.Put(key, data)
}

// GetSerialized reads and deserializes a record. The second return reports
// whether the key was present at all.
func GetSerialized(ctx Context, key []byte, value interface{}) (bool, error) {
	data, err := ctx.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, borsh.Deserialize(value, data)
}
