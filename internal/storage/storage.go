// Package storage opens the configured key-value engine.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/kv/badgerkv"
	"github.com/goran-ethernal/HeaderIndexor/internal/kv/leveldbkv"
	"github.com/goran-ethernal/HeaderIndexor/internal/kv/sqlitekv"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/migrations"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// Open opens the engine selected by cfg.Engine.
// The returned maintenance coordinator is a no-op for every engine but sqlite without maintenance settings.
func Open(cfg config.StorageConfig, log *logger.Logger) (kv.Store, db.Maintenance, error) {
	log = log.WithComponent(common.ComponentKVStore)

	switch cfg.Engine {
	case config.EngineSQLite:
		database, err := db.NewSQLiteDBFromConfig(cfg.DB)
		if err != nil {
			return nil, nil, err
		}

		if err := migrations.RunMigrationsDB(log, database); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		maintenance := db.NewMaintenanceCoordinator(cfg.DB.Path, database, cfg.Maintenance, log)

		log.Infof("opened sqlite store at %s", cfg.DB.Path)

		return sqlitekv.New(database, maintenance), maintenance, nil

	case config.EngineLevelDB:
		path := filepath.Join(cfg.Path, "leveldb")

		store, err := leveldbkv.Open(path, cfg.SyncWrites)
		if err != nil {
			return nil, nil, err
		}

		log.Infof("opened leveldb store at %s", path)

		return store, &db.NoOpMaintenance{}, nil

	case config.EngineBadger:
		path := filepath.Join(cfg.Path, "badger")

		store, err := badgerkv.Open(badgerkv.Options{
			Path:       path,
			SyncWrites: cfg.SyncWrites,
			GCInterval: cfg.GCInterval.Duration,
			Logger:     log,
		})
		if err != nil {
			return nil, nil, err
		}

		log.Infof("opened badger store at %s", path)

		return store, &db.NoOpMaintenance{}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage engine %q", cfg.Engine)
	}
}
