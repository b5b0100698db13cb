package badgerkv

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/kv/kvtest"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/stretchr/testify/require"
)

func TestStore_Conformance(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kv.Store {
		store, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestStore_Persistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badger")
	log := logger.NewNopLogger()

	store, err := Open(Options{Path: path, SyncWrites: true, GCInterval: time.Hour, Logger: log})
	require.NoError(t, err)

	key := []byte("t:aa")
	value := []byte{3}
	require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
		return tx.Save(key, value)
	}))
	// the caller may reuse its buffers after Save
	key[0], value[0] = 'x', 9

	require.NoError(t, store.Close())

	store, err = Open(Options{Path: path, Logger: log})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, kv.View(store, func(tx kv.Tx) error {
		got, err := tx.Read([]byte("t:aa"))
		require.NoError(t, err)
		require.Equal(t, []byte{3}, got)
		return nil
	}))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Options{})
	require.Error(t, err)
}
