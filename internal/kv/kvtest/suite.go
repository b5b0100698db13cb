// Package kvtest holds the behavior every key-value engine adapter must share.
package kvtest

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/stretchr/testify/require"
)

// Run executes the engine conformance tests against stores produced by newStore.
func Run(t *testing.T, newStore func(t *testing.T) kv.Store) {
	t.Helper()

	t.Run("ReadMissingKey", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			value, err := tx.Read([]byte("missing"))
			require.NoError(t, err)
			require.Nil(t, value)
			return nil
		}))
	})

	t.Run("SaveReadRemove", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			return tx.Save([]byte("b_chain:01"), []byte{1, 2, 3})
		}))

		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			value, err := tx.Read([]byte("b_chain:01"))
			require.NoError(t, err)
			require.Equal(t, []byte{1, 2, 3}, value)
			return nil
		}))

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			if err := tx.Save([]byte("b_chain:01"), []byte{9}); err != nil {
				return err
			}
			value, err := tx.Read([]byte("b_chain:01"))
			require.NoError(t, err)
			require.Equal(t, []byte{9}, value, "writes are visible inside the transaction")
			return nil
		}))

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			if err := tx.Remove([]byte("b_chain:01")); err != nil {
				return err
			}
			// removing an absent key is fine
			return tx.Remove([]byte("b_chain:02"))
		}))

		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			value, err := tx.Read([]byte("b_chain:01"))
			require.NoError(t, err)
			require.Nil(t, value)
			return nil
		}))
	})

	t.Run("EmptyValue", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			return tx.Save([]byte("empty"), []byte{})
		}))

		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			value, err := tx.Read([]byte("empty"))
			require.NoError(t, err)
			require.NotNil(t, value, "an empty value is still present")
			require.Empty(t, value)
			return nil
		}))
	})

	t.Run("RollbackDiscardsWrites", func(t *testing.T) {
		store := newStore(t)
		errAbort := errors.New("abort")

		err := kv.Update(store, func(tx kv.Tx) error {
			require.NoError(t, tx.Save([]byte("chain_tips"), []byte("tips")))
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			value, err := tx.Read([]byte("chain_tips"))
			require.NoError(t, err)
			require.Nil(t, value)
			return nil
		}))
	})

	t.Run("ReadOnlyRejectsWrites", func(t *testing.T) {
		store := newStore(t)

		err := kv.View(store, func(tx kv.Tx) error {
			return tx.Save([]byte("k"), []byte("v"))
		})
		require.ErrorIs(t, err, kv.ErrReadOnly)

		err = kv.View(store, func(tx kv.Tx) error {
			return tx.Remove([]byte("k"))
		})
		require.ErrorIs(t, err, kv.ErrReadOnly)
	})

	t.Run("FinishedTransaction", func(t *testing.T) {
		store := newStore(t)

		tx, err := store.Begin(true)
		require.NoError(t, err)
		require.NoError(t, tx.Save([]byte("k"), []byte("v")))
		require.NoError(t, tx.Commit())
		require.ErrorIs(t, tx.Rollback(), kv.ErrTxDone)
		require.ErrorIs(t, tx.Commit(), kv.ErrTxDone)

		tx, err = store.Begin(false)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())
		require.ErrorIs(t, tx.Rollback(), kv.ErrTxDone)
	})

	t.Run("ForEachPrefix", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			for _, key := range []string{
				"chain_path:3", "chain_path:1", "chain_path:2",
				"chain_paths:last", "chain_tips", "b:aa:next", "b_chain:aa",
			} {
				if err := tx.Save([]byte(key), []byte("v:"+key)); err != nil {
					return err
				}
			}
			return nil
		}))

		var keys []string
		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			return tx.ForEach([]byte("chain_path:"), func(key, value []byte) error {
				require.Equal(t, "v:"+string(key), string(value))
				keys = append(keys, string(key))
				return nil
			})
		}))
		require.Equal(t, []string{"chain_path:1", "chain_path:2", "chain_path:3"}, keys)

		keys = nil
		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			return tx.ForEach([]byte("b:"), func(key, value []byte) error {
				keys = append(keys, string(key))
				return nil
			})
		}))
		require.Equal(t, []string{"b:aa:next"}, keys)
	})

	t.Run("ForEachStopAndError", func(t *testing.T) {
		store := newStore(t)
		errScan := errors.New("scan failed")

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			for i := range 5 {
				if err := tx.Save(fmt.Appendf(nil, "h:%02d", i), []byte{byte(i)}); err != nil {
					return err
				}
			}
			return nil
		}))

		visited := 0
		require.NoError(t, kv.View(store, func(tx kv.Tx) error {
			return tx.ForEach([]byte("h:"), func(key, value []byte) error {
				visited++
				if visited == 2 {
					return kv.ErrStopIteration
				}
				return nil
			})
		}))
		require.Equal(t, 2, visited)

		err := kv.View(store, func(tx kv.Tx) error {
			return tx.ForEach([]byte("h:"), func(key, value []byte) error {
				return errScan
			})
		})
		require.ErrorIs(t, err, errScan)
	})

	t.Run("ForEachSeesOwnWrites", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			if err := tx.Save([]byte("t:01"), []byte{1}); err != nil {
				return err
			}

			count := 0
			err := tx.ForEach([]byte("t:"), func(key, value []byte) error {
				count++
				return nil
			})
			require.Equal(t, 1, count)
			return err
		}))
	})

	t.Run("ConcurrentReaders", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, kv.Update(store, func(tx kv.Tx) error {
			return tx.Save([]byte("counters:headers"), []byte{42})
		}))

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- kv.View(store, func(tx kv.Tx) error {
					value, err := tx.Read([]byte("counters:headers"))
					if err != nil {
						return err
					}
					if len(value) != 1 || value[0] != 42 {
						return fmt.Errorf("unexpected value %v", value)
					}
					return nil
				})
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
	})
}
