package headerstore

import (
	"math/big"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/kv/leveldbkv"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) kv.Store {
	t.Helper()

	store, err := leveldbkv.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testHeader(id byte, parent chainhash.Hash, txCount uint64) *chain.Header {
	return &chain.Header{
		Hash:       chainhash.Hash{id},
		PrevHash:   parent,
		Version:    -1,
		MerkleRoot: chainhash.Hash{0xee, id},
		Timestamp:  time.Unix(1600000000+int64(id), 0),
		Bits:       0x207fffff,
		Nonce:      uint32(id),
		Work:       big.NewInt(int64(id) + 1),
		SizeBytes:  uint64(id) * 100,
		TxCount:    txCount,
	}
}

func TestStore_SaveGetRemove(t *testing.T) {
	db := newTestKV(t)
	headers := New()
	header := testHeader(1, chainhash.Hash{}, 5)

	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		return headers.SaveHeader(tx, header)
	}))

	require.NoError(t, kv.View(db, func(tx kv.Tx) error {
		got, err := headers.GetHeader(tx, header.Hash)
		require.NoError(t, err)
		require.Equal(t, header, got)

		missing, err := headers.GetHeader(tx, chainhash.Hash{9})
		require.NoError(t, err)
		require.Nil(t, missing)
		return nil
	}))

	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		return headers.RemoveHeader(tx, header.Hash)
	}))

	require.NoError(t, kv.View(db, func(tx kv.Tx) error {
		got, err := headers.GetHeader(tx, header.Hash)
		require.NoError(t, err)
		require.Nil(t, got)
		return nil
	}))
}

func TestStore_Counters(t *testing.T) {
	db := newTestKV(t)
	headers := New()

	a := testHeader(1, chainhash.Hash{}, 2)
	b := testHeader(2, a.Hash, 3)

	counts := func() (uint64, uint64) {
		var nHeaders, nTxs uint64
		require.NoError(t, kv.View(db, func(tx kv.Tx) error {
			var err error
			nHeaders, err = headers.CountHeaders(tx)
			require.NoError(t, err)
			nTxs, err = headers.CountTransactions(tx)
			require.NoError(t, err)
			return nil
		}))
		return nHeaders, nTxs
	}

	nHeaders, nTxs := counts()
	require.Zero(t, nHeaders)
	require.Zero(t, nTxs)

	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		require.NoError(t, headers.SaveHeader(tx, a))
		require.NoError(t, headers.SaveHeader(tx, b))
		// saving twice does not count twice
		return headers.SaveHeader(tx, b)
	}))

	nHeaders, nTxs = counts()
	require.Equal(t, uint64(2), nHeaders)
	require.Equal(t, uint64(5), nTxs)

	// removing a header keeps its transactions
	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		return headers.RemoveHeader(tx, b.Hash)
	}))
	nHeaders, nTxs = counts()
	require.Equal(t, uint64(1), nHeaders)
	require.Equal(t, uint64(5), nTxs)

	// a header stored again replaces its transaction count instead of adding to it
	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		return headers.SaveHeader(tx, b)
	}))
	nHeaders, nTxs = counts()
	require.Equal(t, uint64(2), nHeaders)
	require.Equal(t, uint64(5), nTxs)

	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		require.NoError(t, headers.RemoveTransactionsOf(tx, a.Hash))
		// second removal is a no-op
		require.NoError(t, headers.RemoveTransactionsOf(tx, a.Hash))
		return headers.RemoveHeader(tx, chainhash.Hash{42})
	}))
	nHeaders, nTxs = counts()
	require.Equal(t, uint64(2), nHeaders)
	require.Equal(t, uint64(3), nTxs)
}

func TestStore_ForEachHeader(t *testing.T) {
	db := newTestKV(t)
	headers := New()

	want := map[chainhash.Hash]*chain.Header{}
	require.NoError(t, kv.Update(db, func(tx kv.Tx) error {
		for i := byte(1); i <= 4; i++ {
			h := testHeader(i, chainhash.Hash{i - 1}, uint64(i))
			want[h.Hash] = h
			if err := headers.SaveHeader(tx, h); err != nil {
				return err
			}
		}
		return nil
	}))

	got := map[chainhash.Hash]*chain.Header{}
	require.NoError(t, kv.View(db, func(tx kv.Tx) error {
		return headers.ForEachHeader(tx, func(h *chain.Header) error {
			got[h.Hash] = h
			return nil
		})
	}))
	require.Equal(t, want, got)
}
