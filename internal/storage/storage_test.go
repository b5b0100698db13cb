package storage

import (
	"testing"

	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name            string
		engine          string
		maintenance     *config.MaintenanceConfig
		wantCoordinator bool
	}{
		{name: "sqlite", engine: config.EngineSQLite},
		{name: "sqlite with maintenance", engine: config.EngineSQLite, maintenance: &config.MaintenanceConfig{}, wantCoordinator: true},
		{name: "leveldb", engine: config.EngineLevelDB},
		{name: "badger", engine: config.EngineBadger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.StorageConfig{
				Engine:      tt.engine,
				Path:        t.TempDir(),
				Maintenance: tt.maintenance,
			}
			cfg.ApplyDefaults()
			require.NoError(t, cfg.Validate())

			store, maintenance, err := Open(cfg, logger.NewNopLogger())
			require.NoError(t, err)
			defer store.Close()

			_, isCoordinator := maintenance.(*db.MaintenanceCoordinator)
			require.Equal(t, tt.wantCoordinator, isCoordinator)

			require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
				return tx.Save([]byte("chain_tips"), []byte{1})
			}))
			require.NoError(t, kv.View(store, func(tx kv.Tx) error {
				value, err := tx.Read([]byte("chain_tips"))
				require.NoError(t, err)
				require.Equal(t, []byte{1}, value)
				return nil
			}))
		})
	}
}

func TestOpen_UnknownEngine(t *testing.T) {
	_, _, err := Open(config.StorageConfig{Engine: "rocksdb"}, logger.NewNopLogger())
	require.ErrorContains(t, err, "unsupported storage engine")
}
