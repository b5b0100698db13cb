package sqlitekv

import (
	"path/filepath"
	"testing"

	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/kv/kvtest"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/migrations"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) kv.Store {
	t.Helper()

	dbConfig := config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "kv.db"),
	}
	dbConfig.ApplyDefaults()

	database, err := db.NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrationsDB(logger.NewNopLogger(), database))

	store := New(database, nil)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_Conformance(t *testing.T) {
	kvtest.Run(t, newTestStore)
}

func TestStore_HoldsOperationLock(t *testing.T) {
	dbConfig := config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "kv.db"),
	}
	dbConfig.ApplyDefaults()

	database, err := db.NewSQLiteDBFromConfig(dbConfig)
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrationsDB(logger.NewNopLogger(), database))

	maintenance := &countingMaintenance{}
	store := New(database, maintenance)
	defer store.Close()

	tx, err := store.Begin(true)
	require.NoError(t, err)
	require.Equal(t, 1, maintenance.held)

	require.NoError(t, tx.Save([]byte("k"), nil))
	require.NoError(t, tx.Commit())
	require.Equal(t, 0, maintenance.held)

	// a finished transaction does not release twice
	require.ErrorIs(t, tx.Rollback(), kv.ErrTxDone)
	require.Equal(t, 0, maintenance.held)

	require.NoError(t, kv.View(store, func(tx kv.Tx) error {
		value, err := tx.Read([]byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte{}, value)
		return nil
	}))
	require.Equal(t, 0, maintenance.held)
}

type countingMaintenance struct {
	db.NoOpMaintenance
	held int
}

func (m *countingMaintenance) AcquireOperationLock() func() {
	m.held++
	return func() { m.held-- }
}
