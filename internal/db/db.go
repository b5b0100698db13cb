package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// KVTable is the table holding the key-value entries of the SQLite engine.
const KVTable = "kv_entries"

// NewSQLiteDBFromConfig opens the SQLite database described by cfg, creating its directory when missing.
// Every pragma travels in the DSN so each pooled connection gets the same settings.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	params := url.Values{}
	params.Set("_txlock", "immediate")
	params.Set("_foreign_keys", strconv.FormatBool(cfg.EnableForeignKeys))
	params.Set("_journal_mode", cfg.JournalMode)
	params.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	params.Set("_synchronous", cfg.Synchronous)
	params.Set("_cache_size", strconv.Itoa(cfg.CacheSize))

	db, err := sql.Open("sqlite3", "file:"+cfg.Path+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Path, err)
	}

	return db, nil
}

// Vacuum rebuilds the database file, reclaiming free pages.
func Vacuum(db *sql.DB) error {
	if _, err := db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	return nil
}

// DBTotalSize returns the combined size of the database file and its -wal and -shm companions.
// Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64

	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		total += info.Size()
	}

	return total, nil
}
