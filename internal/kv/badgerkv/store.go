// Package badgerkv implements the key-value contract on top of BadgerDB.
package badgerkv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

const (
	engineName     = "badger"
	gcDiscardRatio = 0.5
)

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.Transaction = (*transaction)(nil)
)

// Options configures a Badger store.
type Options struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in memory.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// GCInterval is the value log garbage collection period. Zero disables it.
	GCInterval time.Duration
	// Logger receives Badger's internal log output. Nil silences it.
	Logger *logger.Logger
}

// Store is a kv.Store backed by a Badger database.
type Store struct {
	db  *badger.DB
	log *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// badgerLogger adapts the component logger to Badger's Logger interface.
type badgerLogger struct {
	log *logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

// Open opens (or creates) a Badger database and starts value log GC when configured.
func Open(opts Options) (*Store, error) {
	var badgerOpts badger.Options
	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("path is required for a persistent badger database")
		}
		if err := os.MkdirAll(opts.Path, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create badger directory %s: %w", opts.Path, err)
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	badgerOpts = badgerOpts.
		WithSyncWrites(opts.SyncWrites).
		WithNumVersionsToKeep(1)

	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(&badgerLogger{log: opts.Logger})
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	store := &Store{db: db, log: log}

	if opts.GCInterval > 0 && !opts.InMemory {
		ctx, cancel := context.WithCancel(context.Background())
		store.cancel = cancel
		store.wg.Add(1)
		go store.runGC(ctx, opts.GCInterval)
	}

	return store, nil
}

// runGC periodically rewrites value log files until there is nothing left to reclaim.
func (s *Store) runGC(ctx context.Context, interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rewrites := 0
			for {
				err := s.db.RunValueLogGC(gcDiscardRatio)
				if err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						s.log.Warnf("value log gc failed: %v", err)
					}
					break
				}
				rewrites++
			}
			if rewrites > 0 {
				s.log.Debugf("value log gc rewrote %d files", rewrites)
			}
		}
	}
}

// Begin opens a new transaction.
func (s *Store) Begin(writable bool) (kv.Transaction, error) {
	start := time.Now()
	txn := s.db.NewTransaction(writable)
	metrics.KVOperationLog(engineName, "begin", start, nil)

	return &transaction{txn: txn, writable: writable}, nil
}

// Close stops value log GC and closes the database.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
	}

	return s.db.Close()
}

type transaction struct {
	txn      *badger.Txn
	writable bool
	done     bool
}

func (t *transaction) Read(key []byte) (value []byte, err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "read", start, err) }(time.Now())

	if t.done {
		return nil, kv.ErrTxDone
	}

	item, err := t.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	value, err = item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to copy value: %w", err)
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

	it := t.txn.NewIterator(badger.IteratorOptions{
		Prefix:         prefix,
		PrefetchValues: true,
		PrefetchSize:   100,
	})
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()

		value, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("failed to copy value: %w", err)
		}
		if value == nil {
			value = []byte{}
		}

		if err := fn(item.Key(), value); err != nil {
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

	// badger keeps the slices until commit
	if err := t.txn.Set(clone(key), clone(value)); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}

	return nil
}

func (t *transaction) Remove(key []byte) (err error) {
	defer func(start time.Time) { metrics.KVOperationLog(engineName, "remove", start, err) }(time.Now())

	if err := t.checkWritable(); err != nil {
		return err
	}

	if err := t.txn.Delete(clone(key)); err != nil {
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

	if !t.writable {
		t.txn.Discard()
		return nil
	}

	if err := t.txn.Commit(); err != nil {
		t.txn.Discard()
		return err
	}

	return nil
}

func (t *transaction) Rollback() error {
	if t.done {
		return kv.ErrTxDone
	}
	t.done = true
	t.txn.Discard()

	return nil
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

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
