// Package headerstore keeps raw block headers and transaction counts in the key-value store.
package headerstore

import (
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

const (
	headerPrefix      = "h:"
	txCountPrefix     = "t:"
	headerCounterKey  = "counters:headers"
	txCountCounterKey = "counters:txs"
)

var _ chain.HeaderStore = (*Store)(nil)

// storedHeader is the encoded form of a header. The hash is part of the key.
type storedHeader struct {
	PrevHash   chainhash.Hash
	Version    uint32
	MerkleRoot chainhash.Hash
	Timestamp  uint64
	Bits       uint32
	Nonce      uint32
	Work       *big.Int
	SizeBytes  uint64
	TxCount    uint64
}

// Store implements chain.HeaderStore. It keeps a running count of headers and transactions.
type Store struct{}

// New creates a header store.
func New() *Store {
	return &Store{}
}

func headerKey(hash chainhash.Hash) []byte {
	return []byte(headerPrefix + hash.String())
}

func txCountKey(hash chainhash.Hash) []byte {
	return []byte(txCountPrefix + hash.String())
}

// GetHeader returns the header stored under hash, or nil when absent.
func (s *Store) GetHeader(tx kv.Tx, hash chainhash.Hash) (*chain.Header, error) {
	value, err := tx.Read(headerKey(hash))
	if err != nil || value == nil {
		return nil, err
	}

	return decodeHeader(hash, value)
}

// SaveHeader stores the header and its transaction count.
func (s *Store) SaveHeader(tx kv.Tx, header *chain.Header) error {
	existing, err := tx.Read(headerKey(header.Hash))
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	value, err := encodeHeader(header)
	if err != nil {
		return err
	}
	if err := tx.Save(headerKey(header.Hash), value); err != nil {
		return err
	}
	if err := addToCounter(tx, headerCounterKey, 1); err != nil {
		return err
	}

	// a header saved again after its removal still owns its transactions
	previous, err := readUint64(tx, txCountKey(header.Hash))
	if err != nil {
		return err
	}
	if err := writeUint64(tx, txCountKey(header.Hash), header.TxCount); err != nil {
		return err
	}

	return addToCounter(tx, txCountCounterKey, int64(header.TxCount)-int64(previous))
}

// RemoveHeader deletes the header. Removing an absent header is a no-op.
func (s *Store) RemoveHeader(tx kv.Tx, hash chainhash.Hash) error {
	existing, err := tx.Read(headerKey(hash))
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := tx.Remove(headerKey(hash)); err != nil {
		return err
	}

	return addToCounter(tx, headerCounterKey, -1)
}

// ForEachHeader calls fn for every stored header.
func (s *Store) ForEachHeader(tx kv.Tx, fn func(header *chain.Header) error) error {
	return tx.ForEach([]byte(headerPrefix), func(key, value []byte) error {
		hash, err := chainhash.NewHashFromStr(string(key[len(headerPrefix):]))
		if err != nil {
			return fmt.Errorf("invalid header key %q: %w", key, err)
		}

		header, err := decodeHeader(*hash, value)
		if err != nil {
			return err
		}

		return fn(header)
	})
}

// CountHeaders returns the number of stored headers.
func (s *Store) CountHeaders(tx kv.Tx) (uint64, error) {
	return readUint64(tx, []byte(headerCounterKey))
}

// CountTransactions returns the number of transactions of all blocks whose transactions are stored.
func (s *Store) CountTransactions(tx kv.Tx) (uint64, error) {
	return readUint64(tx, []byte(txCountCounterKey))
}

// RemoveTransactionsOf deletes the transaction data of a block.
func (s *Store) RemoveTransactionsOf(tx kv.Tx, hash chainhash.Hash) error {
	value, err := tx.Read(txCountKey(hash))
	if err != nil || value == nil {
		return err
	}

	var count uint64
	if err := rlp.DecodeBytes(value, &count); err != nil {
		return fmt.Errorf("failed to decode transaction count of %s: %w", hash, err)
	}

	if err := tx.Remove(txCountKey(hash)); err != nil {
		return err
	}

	return addToCounter(tx, txCountCounterKey, -int64(count))
}

func encodeHeader(h *chain.Header) ([]byte, error) {
	work := h.Work
	if work == nil {
		work = new(big.Int)
	}

	value, err := rlp.EncodeToBytes(&storedHeader{
		PrevHash:   h.PrevHash,
		Version:    uint32(h.Version),
		MerkleRoot: h.MerkleRoot,
		Timestamp:  uint64(h.Timestamp.Unix()),
		Bits:       h.Bits,
		Nonce:      h.Nonce,
		Work:       work,
		SizeBytes:  h.SizeBytes,
		TxCount:    h.TxCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode header %s: %w", h.Hash, err)
	}

	return value, nil
}

func decodeHeader(hash chainhash.Hash, value []byte) (*chain.Header, error) {
	var stored storedHeader
	if err := rlp.DecodeBytes(value, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode header %s: %w", hash, err)
	}

	return &chain.Header{
		Hash:       hash,
		PrevHash:   stored.PrevHash,
		Version:    int32(stored.Version),
		MerkleRoot: stored.MerkleRoot,
		Timestamp:  time.Unix(int64(stored.Timestamp), 0),
		Bits:       stored.Bits,
		Nonce:      stored.Nonce,
		Work:       stored.Work,
		SizeBytes:  stored.SizeBytes,
		TxCount:    stored.TxCount,
	}, nil
}

func readUint64(tx kv.Tx, key []byte) (uint64, error) {
	value, err := tx.Read(key)
	if err != nil || value == nil {
		return 0, err
	}

	var n uint64
	if err := rlp.DecodeBytes(value, &n); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return n, nil
}

func writeUint64(tx kv.Tx, key []byte, n uint64) error {
	value, err := rlp.EncodeToBytes(n)
	if err != nil {
		return err
	}

	return tx.Save(key, value)
}

func addToCounter(tx kv.Tx, key string, delta int64) error {
	if delta == 0 {
		return nil
	}

	current, err := readUint64(tx, []byte(key))
	if err != nil {
		return err
	}

	next := int64(current) + delta
	if next < 0 {
		next = 0
	}

	return writeUint64(tx, []byte(key), uint64(next))
}
