package store

import (
	"io"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("store: not found")

// KVDB is the key/value database surface the stores are built on. The
// concrete implementation is pebble-backed; tests may substitute an
// in-memory variant.
type KVDB interface {
	Get(key []byte) ([]byte, io.Closer, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	NewBatch(indexed bool) Transaction
	NewIter(lowerBound []byte, upperBound []byte) (Iterator, error)
	Compact(start, end []byte, parallelize bool) error
	DeleteRange(start, end []byte) error
	Close() error
}

// Transaction batches mutations for atomic commit.
type Transaction interface {
	Get(key []byte) ([]byte, io.Closer, error)
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	Commit() error
	Abort() error
}

type Iterator interface {
	Key() []byte
	Value() []byte
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	Valid() bool
	SeekLT([]byte) bool
	SeekGE([]byte) bool
	Close() error
}

// TypedIterator decodes raw iterator positions into values of type T.
type TypedIterator[T any] interface {
	First() bool
	Next() bool
	Valid() bool
	Value() (T, error)
	Close() error
}
