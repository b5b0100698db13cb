// Package sqlitekv implements the key-value contract on top of a single SQLite table.
package sqlitekv

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/russross/meddler"
)

const engineName = "sqlite"

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Transaction = (*transaction)(nil)
)

// entry is one row of the kv_entries table.
type entry struct {
	Key   []byte `meddler:"entry_key"`
	Value []byte `meddler:"entry_value"`
}

// Store is a kv.Store persisted in the kv_entries table of a SQLite database.
// Every open transaction holds the maintenance operation lock until it finishes.
type Store struct {
	db          *sql.DB
	maintenance db.Maintenance
}

// New wraps an open database whose schema has already been migrated.
func New(database *sql.DB, maintenance db.Maintenance) *Store {
	if maintenance == nil {
		maintenance = &db.NoOpMaintenance{}
	}

	return &Store{
		db:          database,
		maintenance: maintenance,
	}
}

// Begin opens a new transaction.
func (s *Store) Begin(writable bool) (kv.Transaction, error) {
	start := time.Now()

	unlock := s.maintenance.AcquireOperationLock()

	tx, err := s.db.Begin()
	metrics.KVOperationLog(engineName, "begin", start, err)
	if err != nil {
		unlock()
		return nil, err
	}

	return &transaction{
		tx:       tx,
		writable: writable,
		unlock:   unlock,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type transaction struct {
	tx       *sql.Tx
	writable bool
	unlock   func()
	done     bool
}

func (t *transaction) Read(key []byte) (value []byte, err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "read", start, err) }(time.Now())

	if t.done {
		return nil, kv.ErrTxDone
	}

	var row entry
	err = meddler.QueryRow(t.tx, &row,
		"SELECT entry_key, entry_value FROM "+db.KVTable+" WHERE entry_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", mapError(err))
	}

	if row.Value == nil {
		row.Value = []byte{}
	}

	return row.Value, nil
}

func (t *transaction) ForEach(prefix []byte, fn func(key, value []byte) error) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "iterate", start, err) }(time.Now())

	if t.done {
		return kv.ErrTxDone
	}

	var rows []*entry
	if end := kv.PrefixEnd(prefix); end != nil {
		err = meddler.QueryAll(t.tx, &rows,
			"SELECT entry_key, entry_value FROM "+db.KVTable+
				" WHERE entry_key >= ? AND entry_key < ? ORDER BY entry_key ASC", prefix, end)
	} else {
		err = meddler.QueryAll(t.tx, &rows,
			"SELECT entry_key, entry_value FROM "+db.KVTable+
				" WHERE entry_key >= ? ORDER BY entry_key ASC", prefix)
	}
	if err != nil {
		return fmt.Errorf("failed to scan prefix: %w", mapError(err))
	}

	for _, row := range rows {
		if row.Value == nil {
			row.Value = []byte{}
		}
		if err := fn(row.Key, row.Value); err != nil {
			if errors.Is(err, kv.ErrStopIteration) {
				return nil
			}
			return err
		}
	}

	return nil
}

func (t *transaction) Save(key, value []byte) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "save", start, err) }(time.Now())

	if err := t.checkWritable(); err != nil {
		return err
	}

	if value == nil {
		value = []byte{}
	}

	_, err = t.tx.Exec(
		"INSERT INTO "+db.KVTable+" (entry_key, entry_value) VALUES (?, ?) "+
			"ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save key: %w", mapError(err))
	}

	return nil
}

func (t *transaction) Remove(key []byte) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "remove", start, err) }(time.Now())

	if err := t.checkWritable(); err != nil {
		return err
	}

	if _, err = t.tx.Exec("DELETE FROM "+db.KVTable+" WHERE entry_key = ?", key); err != nil {
		return fmt.Errorf("failed to remove key: %w", mapError(err))
	}

	return nil
}

func (t *transaction) Commit() (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "commit", start, err) }(time.Now())

	if t.done {
		return kv.ErrTxDone
	}
	defer t.finish()

	if !t.writable {
		return mapError(t.tx.Rollback())
	}

	return mapError(t.tx.Commit())
}

func (t *transaction) Rollback() error {
	if t.done {
		return kv.ErrTxDone
	}
	defer t.finish()

	return mapError(t.tx.Rollback())
}

func (t *transaction) checkWritable() error {
	if t.done {
		return kv.ErrTxDone
	}
	if !t.writable {
		return kv.ErrReadOnly
	}
	return nil
}

func (t *transaction) finish() {
	t.done = true
	t.unlock()
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return kv.ErrTxDone
	}
	return err
}
