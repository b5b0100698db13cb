// Package leveldbkv implements the key-value contract on top of LevelDB.
// Writable transactions use LevelDB transactions, read-only ones a snapshot.
package leveldbkv

import (
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const engineName = "leveldb"

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Transaction = (*transaction)(nil)
)

// Store is a kv.Store backed by a LevelDB database.
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) a LevelDB database in the given directory.
// With syncWrites disabled commits skip fsync.
func Open(path string, syncWrites bool) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{NoSync: !syncWrites})
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens a LevelDB database that lives only in memory.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory leveldb: %w", err)
	}

	return &Store{db: db}, nil
}

// Begin opens a new transaction. Writable transactions are exclusive.
func (s *Store) Begin(writable bool) (kv.Transaction, error) {
	start := time.Now()

	if !writable {
		snap, err := s.db.GetSnapshot()
		metrics.KVOperationLog(engineName, "begin", start, err)
		if err != nil {
			return nil, err
		}
		return &transaction{reader: snap, snap: snap}, nil
	}

	tx, err := s.db.OpenTransaction()
	metrics.KVOperationLog(engineName, "begin", start, err)
	if err != nil {
		return nil, err
	}

	return &transaction{reader: tx, tx: tx}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// reader is the read surface shared by leveldb transactions and snapshots.
type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

type transaction struct {
	reader reader
	tx     *leveldb.Transaction
	snap   *leveldb.Snapshot
	done   bool
}

func (t *transaction) Read(key []byte) (value []byte, err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "read", start, err) }(time.Now())

	if t.done {
		return nil, kv.ErrTxDone
	}

	value, err = t.reader.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	if value == nil {
		value = []byte{}
	}

	return value, nil
}

func (t *transaction) ForEach(prefix []byte, fn func(key, value []byte) error) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "iterate", start, err) }(time.Now())

	if t.done {
		return kv.ErrTxDone
	}

	iter := t.reader.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	for iter.Next() {
		value := iter.Value()
		if value == nil {
			value = []byte{}
		}
		if err := fn(iter.Key(), value); err != nil {
			if errors.Is(err, kv.ErrStopIteration) {
				return nil
			}
			return err
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("failed to scan prefix: %w", err)
	}

	return nil
}

func (t *transaction) Save(key, value []byte) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "save", start, err) }(time.Now())

	if err := t.checkWritable(); err != nil {
		return err
	}

	if err := t.tx.Put(key, value, nil); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	return nil
}

func (t *transaction) Remove(key []byte) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "remove", start, err) }(time.Now())

	if err := t.checkWritable(); err != nil {
		return err
	}

	if err := t.tx.Delete(key, nil); err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}

	return nil
}

func (t *transaction) Commit() (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "commit", start, err) }(time.Now())

	if t.done {
		return kv.ErrTxDone
	}
	t.done = true

	if t.tx == nil {
		t.snap.Release()
		return nil
	}

	if err := t.tx.Commit(); err != nil {
		t.tx.Discard()
		return err
	}

	return nil
}

func (t *transaction) Rollback() error {
	if t.done {
		return kv.ErrTxDone
	}
	t.done = true

	if t.tx == nil {
		t.snap.Release()
		return nil
	}

	t.tx.Discard()

	return nil
}

func (t *transaction) checkWritable() error {
	if t.done {
		return kv.ErrTxDone
	}
	if t.tx == nil {
		return kv.ErrReadOnly
	}
	return nil
}
