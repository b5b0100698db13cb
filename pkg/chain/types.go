// Package chain defines the types and collaborator contracts of the fork-aware header index.
package chain

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// PathID identifies a chain path.
type PathID int64

// NoParentPath is the parent id of the root path.
const NoParentPath PathID = -1

// Header is a stored block header together with the values the index derives from it.
type Header struct {
	Hash       chainhash.Hash
	PrevHash   chainhash.Hash
	Version    int32
	MerkleRoot chainhash.Hash
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32

	// Work is the proof-of-work contribution of this block alone.
	Work *big.Int
	// SizeBytes is the serialized size of the full block.
	SizeBytes uint64
	// TxCount is the number of transactions in the block.
	TxCount uint64
}

// HeaderFromWire builds a Header from a wire header. The work is derived from the header bits.
func HeaderFromWire(h *wire.BlockHeader, sizeBytes, txCount uint64) *Header {
	return &Header{
		Hash:       h.BlockHash(),
		PrevHash:   h.PrevBlock,
		Version:    h.Version,
		MerkleRoot: h.MerkleRoot,
		Timestamp:  h.Timestamp,
		Bits:       h.Bits,
		Nonce:      h.Nonce,
		Work:       blockchain.CalcWork(h.Bits),
		SizeBytes:  sizeBytes,
		TxCount:    txCount,
	}
}

// ToWire returns the wire form of the header.
func (h *Header) ToWire() *wire.BlockHeader {
	return &wire.BlockHeader{
		Version:    h.Version,
		PrevBlock:  h.PrevHash,
		MerkleRoot: h.MerkleRoot,
		Timestamp:  h.Timestamp,
		Bits:       h.Bits,
		Nonce:      h.Nonce,
	}
}

// ChainRecord is the position of a connected block. It exists only while the block is connected.
type ChainRecord struct {
	Hash      chainhash.Hash
	Height    uint64
	Work      *big.Int
	SizeBytes uint64
	PathID    PathID
}

// ChainPath is a straight run of connected blocks sharing one id.
type ChainPath struct {
	ID       PathID
	ParentID PathID
	// Anchor is the first block that carried this id.
	Anchor chainhash.Hash
}

// IsRoot reports whether the path has no parent path.
func (p *ChainPath) IsRoot() bool {
	return p.ParentID == NoParentPath
}

// ChainInfo is the header of a connected block together with its chain position.
type ChainInfo struct {
	Header    *Header
	Height    uint64
	Work      *big.Int
	SizeBytes uint64
}

// State summarizes the index.
type State struct {
	Tips             []ChainInfo
	BlockCount       uint64
	TransactionCount uint64
}
