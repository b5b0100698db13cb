// Package kv defines the transactional key-value contract the chain index is built on.
package kv

import (
	"errors"
)

var (
	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("kv: transaction has already been committed or rolled back")

	// ErrReadOnly is returned when a read-only transaction is asked to write.
	ErrReadOnly = errors.New("kv: transaction is read-only")

	// ErrStopIteration can be returned by a ForEach callback to end the scan early without an error.
	ErrStopIteration = errors.New("kv: stop iteration")
)

// Reader reads keys inside a transaction.
type Reader interface {
	// Read returns the value stored under key, or nil when the key is absent.
	Read(key []byte) ([]byte, error)

	// ForEach calls fn for every key starting with prefix, in ascending key order.
	// fn must not modify the transaction; key and value are only valid during the call.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
}

// Writer writes keys inside a transaction.
type Writer interface {
	// Save stores value under key, replacing any previous value.
	Save(key, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key []byte) error
}

// Tx is the view of a transaction handed to callers of Update and View.
type Tx interface {
	Reader
	Writer
}

// Transaction is an open transaction of a Store.
type Transaction interface {
	Tx

	// Commit makes the writes of the transaction durable.
	Commit() error

	// Rollback discards the transaction. It returns ErrTxDone after Commit or a previous Rollback.
	Rollback() error
}

// Store is a transactional key-value engine.
type Store interface {
	// Begin opens a new transaction. Read-only transactions reject writes with ErrReadOnly.
	Begin(writable bool) (Transaction, error)

	// Close releases the engine.
	Close() error
}
