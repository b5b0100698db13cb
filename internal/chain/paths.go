package chain

import (
	"iter"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// pathRegistry allocates and retires chain paths inside one transaction.
// Path ids grow monotonically and the counter is persisted with the paths.
type pathRegistry struct {
	tx    kv.Tx
	stats *opStats
}

// Allocate creates a path with the next id.
func (r pathRegistry) Allocate(parent chain.PathID, anchor chainhash.Hash) (*chain.ChainPath, error) {
	last, err := r.lastID()
	if err != nil {
		return nil, err
	}

	path := &chain.ChainPath{
		ID:       last + 1,
		ParentID: parent,
		Anchor:   anchor,
	}

	if err := r.save(path); err != nil {
		return nil, err
	}

	value, err := encodePathID(path.ID)
	if err != nil {
		return nil, err
	}
	if err := r.tx.Save([]byte(chainPathsLastKey), value); err != nil {
		return nil, err
	}

	if r.stats != nil {
		r.stats.pathsAllocated++
	}

	return path, nil
}

// Release deletes a path record. Releasing an absent path is a no-op.
func (r pathRegistry) Release(id chain.PathID) error {
	value, err := r.tx.Read(keyChainPath(id))
	if err != nil || value == nil {
		return err
	}

	if err := r.tx.Remove(keyChainPath(id)); err != nil {
		return err
	}

	if r.stats != nil {
		r.stats.pathsReleased++
	}

	return nil
}

// Get returns the path with the given id, or nil when it does not exist.
func (r pathRegistry) Get(id chain.PathID) (*chain.ChainPath, error) {
	value, err := r.tx.Read(keyChainPath(id))
	if err != nil || value == nil {
		return nil, err
	}

	return decodePath(id, value)
}

// MustGet returns the path with the given id and reports a missing path as corruption.
func (r pathRegistry) MustGet(id chain.PathID) (*chain.ChainPath, error) {
	path, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, corruption("chain path %d does not exist", id)
	}

	return path, nil
}

// Reparent moves path id from parent oldParent to newParent.
// Paths whose parent is not oldParent are left untouched.
func (r pathRegistry) Reparent(id, oldParent, newParent chain.PathID) error {
	path, err := r.MustGet(id)
	if err != nil {
		return err
	}
	if path.ParentID != oldParent {
		return nil
	}

	path.ParentID = newParent

	return r.save(path)
}

// Ancestors yields id followed by the ids of its parent paths up to the root.
// Each call of the returned sequence starts over from id.
func (r pathRegistry) Ancestors(id chain.PathID) iter.Seq2[chain.PathID, error] {
	return func(yield func(chain.PathID, error) bool) {
		seen := make(map[chain.PathID]struct{})

		for current := id; current != chain.NoParentPath; {
			if _, ok := seen[current]; ok {
				yield(0, corruption("chain path %d is its own ancestor", current))
				return
			}
			seen[current] = struct{}{}

			path, err := r.MustGet(current)
			if err != nil {
				yield(0, err)
				return
			}

			if !yield(current, nil) {
				return
			}

			current = path.ParentID
		}
	}
}

// IsAncestor reports whether ancestor equals id or is one of its parent paths.
func (r pathRegistry) IsAncestor(ancestor, id chain.PathID) (bool, error) {
	for pathID, err := range r.Ancestors(id) {
		if err != nil {
			return false, err
		}
		if pathID == ancestor {
			return true, nil
		}
	}

	return false, nil
}

func (r pathRegistry) lastID() (chain.PathID, error) {
	value, err := r.tx.Read([]byte(chainPathsLastKey))
	if err != nil || value == nil {
		return 0, err
	}

	return decodePathID(value)
}

func (r pathRegistry) save(path *chain.ChainPath) error {
	value, err := encodePath(path)
	if err != nil {
		return err
	}

	return r.tx.Save(keyChainPath(path.ID), value)
}
