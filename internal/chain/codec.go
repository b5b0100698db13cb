package chain

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// storedRecord is the encoded chain record. The hash is part of the key.
type storedRecord struct {
	Height    uint64
	Work      *big.Int
	SizeBytes uint64
	PathID    uint64
}

// storedPath is the encoded chain path. ParentID 0 stands for no parent, ids start at 1.
type storedPath struct {
	ParentID uint64
	Anchor   chainhash.Hash
}

func encodeRecord(rec *chain.ChainRecord) ([]byte, error) {
	if rec.PathID <= 0 {
		return nil, fmt.Errorf("invalid path id %d for block %s", rec.PathID, rec.Hash)
	}

	work := rec.Work
	if work == nil {
		work = new(big.Int)
	}

	return rlp.EncodeToBytes(&storedRecord{
		Height:    rec.Height,
		Work:      work,
		SizeBytes: rec.SizeBytes,
		PathID:    uint64(rec.PathID),
	})
}

func decodeRecord(hash chainhash.Hash, value []byte) (*chain.ChainRecord, error) {
	var stored storedRecord
	if err := rlp.DecodeBytes(value, &stored); err != nil {
		return nil, corruption("undecodable chain record of %s: %v", hash, err)
	}

	return &chain.ChainRecord{
		Hash:      hash,
		Height:    stored.Height,
		Work:      stored.Work,
		SizeBytes: stored.SizeBytes,
		PathID:    chain.PathID(stored.PathID),
	}, nil
}

func encodePath(path *chain.ChainPath) ([]byte, error) {
	var parent uint64
	if path.ParentID != chain.NoParentPath {
		if path.ParentID <= 0 {
			return nil, fmt.Errorf("invalid parent path id %d of path %d", path.ParentID, path.ID)
		}
		parent = uint64(path.ParentID)
	}

	return rlp.EncodeToBytes(&storedPath{
		ParentID: parent,
		Anchor:   path.Anchor,
	})
}

func decodePath(id chain.PathID, value []byte) (*chain.ChainPath, error) {
	var stored storedPath
	if err := rlp.DecodeBytes(value, &stored); err != nil {
		return nil, corruption("undecodable chain path %d: %v", id, err)
	}

	parent := chain.NoParentPath
	if stored.ParentID != 0 {
		parent = chain.PathID(stored.ParentID)
	}

	return &chain.ChainPath{
		ID:       id,
		ParentID: parent,
		Anchor:   stored.Anchor,
	}, nil
}

func encodeHashes(hashes []chainhash.Hash) ([]byte, error) {
	return rlp.EncodeToBytes(hashes)
}

func decodeHashes(value []byte) ([]chainhash.Hash, error) {
	if value == nil {
		return nil, nil
	}

	var hashes []chainhash.Hash
	if err := rlp.DecodeBytes(value, &hashes); err != nil {
		return nil, corruption("undecodable hash list: %v", err)
	}

	return hashes, nil
}

func encodePathID(id chain.PathID) ([]byte, error) {
	return rlp.EncodeToBytes(uint64(id))
}

func decodePathID(value []byte) (chain.PathID, error) {
	var id uint64
	if err := rlp.DecodeBytes(value, &id); err != nil {
		return 0, corruption("undecodable path counter: %v", err)
	}

	return chain.PathID(id), nil
}
