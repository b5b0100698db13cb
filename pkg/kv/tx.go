package kv

import (
	"errors"
)

// Update runs fn inside a writable transaction and commits it when fn succeeds.
// The transaction is rolled back when fn or the commit fails.
// Errors from the store are returned as they are.
func Update(store Store, fn func(tx Tx) error) error {
	return execute(store, true, fn)
}

// View runs fn inside a read-only transaction.
func View(store Store, fn func(tx Tx) error) error {
	return execute(store, false, fn)
}

func execute(store Store, writable bool, fn func(tx Tx) error) (err error) {
	tx, err := store.Begin(writable)
	if err != nil {
		return err
	}
	defer func() {
		// a rollback failure only surfaces when nothing else failed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, ErrTxDone) && err == nil {
			err = rbErr
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if !writable {
		return nil
	}

	return tx.Commit()
}

// PrefixEnd returns the smallest key greater than every key starting with prefix.
// It returns nil when no such key exists (prefix is empty or all 0xff).
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)

	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}

	return nil
}
