package chain

import (
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// tipSet is the ordered list of chain tips stored under one key.
// New tips are appended so the stored order is the order tips appeared in.
type tipSet struct {
	tx kv.Tx
}

// List returns the tips in stored order.
func (t tipSet) List() ([]chainhash.Hash, error) {
	value, err := t.tx.Read([]byte(chainTipsKey))
	if err != nil {
		return nil, err
	}

	return decodeHashes(value)
}

// Contains reports whether hash is a tip.
func (t tipSet) Contains(hash chainhash.Hash) (bool, error) {
	tips, err := t.List()
	if err != nil {
		return false, err
	}

	return slices.Contains(tips, hash), nil
}

// Add appends hash unless it already is a tip.
func (t tipSet) Add(hash chainhash.Hash) error {
	tips, err := t.List()
	if err != nil {
		return err
	}
	if slices.Contains(tips, hash) {
		return nil
	}

	return t.save(append(tips, hash))
}

// Remove drops hash from the tips.
func (t tipSet) Remove(hash chainhash.Hash) error {
	tips, err := t.List()
	if err != nil {
		return err
	}

	i := slices.Index(tips, hash)
	if i < 0 {
		return nil
	}

	return t.save(slices.Delete(tips, i, i+1))
}

// Reset empties the tip list.
func (t tipSet) Reset() error {
	return t.save(nil)
}

func (t tipSet) save(tips []chainhash.Hash) error {
	if tips == nil {
		tips = []chainhash.Hash{}
	}

	value, err := encodeHashes(tips)
	if err != nil {
		return err
	}

	return t.tx.Save([]byte(chainTipsKey), value)
}
