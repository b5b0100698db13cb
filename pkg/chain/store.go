package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// HeaderStore keeps raw headers and per-block transaction counts.
// Every method runs inside the caller's transaction.
type HeaderStore interface {
	// GetHeader returns the header stored under hash, or nil when absent.
	GetHeader(tx kv.Tx, hash chainhash.Hash) (*Header, error)

	// SaveHeader stores the header. Saving a stored header again is a no-op.
	SaveHeader(tx kv.Tx, header *Header) error

	// RemoveHeader deletes the header. Transaction data of the block is kept.
	RemoveHeader(tx kv.Tx, hash chainhash.Hash) error

	// ForEachHeader calls fn for every stored header in key order.
	ForEachHeader(tx kv.Tx, fn func(header *Header) error) error

	// CountHeaders returns the number of stored headers.
	CountHeaders(tx kv.Tx) (uint64, error)

	// CountTransactions returns the number of stored transactions.
	CountTransactions(tx kv.Tx) (uint64, error)

	// RemoveTransactionsOf deletes the transaction data of a block.
	RemoveTransactionsOf(tx kv.Tx, hash chainhash.Hash) error
}
