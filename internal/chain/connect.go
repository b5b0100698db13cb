package chain

import (
	"math/big"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// connectItem is a pending connect: a header and the hash of its connected parent.
// A nil parent marks the genesis block.
type connectItem struct {
	header *chain.Header
	parent *chainhash.Hash
}

// connect connects header below parent and then every stored descendant of header, depth first.
// It returns the record of header. Connecting a connected block returns its record unchanged.
func (b *batch) connect(header *chain.Header, parent *chain.ChainRecord) (*chain.ChainRecord, error) {
	var (
		result *chain.ChainRecord
		stack  = []connectItem{{header: header}}
	)
	if parent != nil {
		stack[0].parent = &parent.Hash
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rec, created, err := b.connectOne(item.header, item.parent)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = rec
		}
		if !created {
			continue
		}

		children, err := b.children(rec.Hash)
		if err != nil {
			return nil, err
		}

		pending := 0
		for _, child := range slices.Backward(children) {
			childHeader, err := b.headers.GetHeader(b.tx, child)
			if err != nil {
				return nil, err
			}
			if childHeader == nil {
				continue
			}
			stack = append(stack, connectItem{header: childHeader, parent: &rec.Hash})
			pending++
		}

		// with children to connect the frontier moves to them
		if pending == 0 {
			if err := b.tips.Add(rec.Hash); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// connectOne creates the chain record of a single block. created is false when the block was already connected.
func (b *batch) connectOne(header *chain.Header, parentHash *chainhash.Hash) (*chain.ChainRecord, bool, error) {
	existing, err := b.record(header.Hash)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	var rec *chain.ChainRecord

	if parentHash == nil {
		path, err := b.paths.Allocate(chain.NoParentPath, header.Hash)
		if err != nil {
			return nil, false, err
		}

		rec = &chain.ChainRecord{
			Hash:      header.Hash,
			Height:    0,
			Work:      new(big.Int).Set(workOf(header)),
			SizeBytes: header.SizeBytes,
			PathID:    path.ID,
		}
	} else {
		parent, err := b.record(*parentHash)
		if err != nil {
			return nil, false, err
		}
		if parent == nil {
			return nil, false, corruption("parent %s of %s is not connected", *parentHash, header.Hash)
		}

		siblings, err := b.connectedChildren(parent.Hash)
		if err != nil {
			return nil, false, err
		}

		pathID, err := b.pathForChild(parent, header.Hash, siblings)
		if err != nil {
			return nil, false, err
		}

		rec = &chain.ChainRecord{
			Hash:      header.Hash,
			Height:    parent.Height + 1,
			Work:      new(big.Int).Add(parent.Work, workOf(header)),
			SizeBytes: parent.SizeBytes + header.SizeBytes,
			PathID:    pathID,
		}

		if err := b.tips.Remove(parent.Hash); err != nil {
			return nil, false, err
		}

		if len(siblings) > 0 {
			b.forks = append(b.forks, chain.ForkDetected{BlockHash: header.Hash, ParentHash: parent.Hash})
			b.stats.forks++
		}
	}

	if err := b.saveRecord(rec); err != nil {
		return nil, false, err
	}
	b.stats.connected++

	b.log.Debugf("connected block %s: height=%d path=%d", rec.Hash, rec.Height, rec.PathID)

	return rec, true, nil
}

// pathForChild decides the path of a new child of parent given the children already connected to it.
//
// With no sibling the child extends the parent's path. The first sibling means a new fork: the
// sibling's run moves to a fresh path and the child gets another one. With more siblings the fork
// already exists and only the child needs a path.
func (b *batch) pathForChild(parent *chain.ChainRecord, child chainhash.Hash, siblings []*chain.ChainRecord) (chain.PathID, error) {
	if len(siblings) == 0 {
		return parent.PathID, nil
	}

	if len(siblings) == 1 && siblings[0].PathID == parent.PathID {
		split, err := b.paths.Allocate(parent.PathID, siblings[0].Hash)
		if err != nil {
			return 0, err
		}

		if err := b.propagate(siblings[0], parent.PathID, split.ID); err != nil {
			return 0, err
		}
	}

	path, err := b.paths.Allocate(parent.PathID, child)
	if err != nil {
		return 0, err
	}

	return path.ID, nil
}

// propagate retags start and its single-child descendants from oldID to newID.
// The walk stops at the first block without exactly one connected child on oldID; the paths
// hanging off that block are moved under newID so ancestry queries keep working.
func (b *batch) propagate(start *chain.ChainRecord, oldID, newID chain.PathID) error {
	current := start

	for current != nil && current.PathID == oldID {
		current.PathID = newID
		if err := b.saveRecord(current); err != nil {
			return err
		}

		children, err := b.connectedChildren(current.Hash)
		if err != nil {
			return err
		}

		var next *chain.ChainRecord
		for _, child := range children {
			if len(children) == 1 && child.PathID == oldID {
				next = child
				continue
			}
			if err := b.paths.Reparent(child.PathID, oldID, newID); err != nil {
				return err
			}
		}

		current = next
	}

	return nil
}

// disconnectItem is a pending disconnect. Items reached by descending from a removed block carry
// the path id their removed parent had.
type disconnectItem struct {
	hash         chainhash.Hash
	descended    bool
	parentPathID chain.PathID
}

// disconnect removes the chain record of hash and of every connected descendant.
// Headers are kept, so descendants become orphans until their ancestor is connected again.
func (b *batch) disconnect(hash chainhash.Hash) error {
	stack := []disconnectItem{{hash: hash}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rec, err := b.record(item.hash)
		if err != nil {
			return err
		}
		if rec == nil {
			continue
		}

		if err := b.removeRecord(rec.Hash); err != nil {
			return err
		}
		b.stats.disconnected++

		if item.descended {
			// a descendant on its removed parent's path was settled at the parent
			if item.parentPathID != rec.PathID {
				if err := b.paths.Release(rec.PathID); err != nil {
					return err
				}
			}
		} else if err := b.detach(rec); err != nil {
			return err
		}

		if err := b.tips.Remove(rec.Hash); err != nil {
			return err
		}

		children, err := b.children(rec.Hash)
		if err != nil {
			return err
		}
		for _, child := range slices.Backward(children) {
			stack = append(stack, disconnectItem{hash: child, descended: true, parentPathID: rec.PathID})
		}

		b.log.Debugf("disconnected block %s: height=%d path=%d", rec.Hash, rec.Height, rec.PathID)
	}

	return nil
}

// detach settles paths and tips around the parent of a block whose record was just removed.
func (b *batch) detach(rec *chain.ChainRecord) error {
	header, err := b.header(rec.Hash)
	if err != nil {
		return err
	}

	parent, err := b.record(header.PrevHash)
	if err != nil {
		return err
	}

	if parent == nil || parent.PathID != rec.PathID {
		if err := b.paths.Release(rec.PathID); err != nil {
			return err
		}
	}

	if parent == nil {
		return nil
	}

	remaining, err := b.connectedChildren(parent.Hash)
	if err != nil {
		return err
	}

	switch len(remaining) {
	case 0:
		return b.tips.Add(parent.Hash)
	case 1:
		// merge the surviving branch back into the parent's path
		survivor := remaining[0]
		if survivor.PathID == parent.PathID {
			return nil
		}
		if err := b.paths.Release(survivor.PathID); err != nil {
			return err
		}
		return b.propagate(survivor, survivor.PathID, parent.PathID)
	default:
		return nil
	}
}

// removeBlock unlinks hash from its parent, disconnects it and deletes its header.
// Removing a block whose header is not stored is a no-op.
func (b *batch) removeBlock(hash chainhash.Hash) error {
	header, err := b.headers.GetHeader(b.tx, hash)
	if err != nil || header == nil {
		return err
	}

	if err := b.removeChild(header.PrevHash, hash); err != nil {
		return err
	}

	if err := b.disconnect(hash); err != nil {
		return err
	}

	return b.headers.RemoveHeader(b.tx, hash)
}

func workOf(header *chain.Header) *big.Int {
	if header.Work == nil {
		return new(big.Int)
	}
	return header.Work
}
