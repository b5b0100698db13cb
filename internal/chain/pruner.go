package chain

import (
	"errors"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
)

const (
	pruneKindChain  = "chain"
	pruneKindOrphan = "orphan"
)

// Pruner removes fork chains and stale orphan headers from an Index.
// It shares the index lock, so pruning is serialized with every other mutation.
type Pruner struct {
	index  *Index
	config config.PruningConfig
	log    *logger.Logger
}

// NewPruner creates a pruner for index.
func NewPruner(index *Index, cfg config.PruningConfig, log *logger.Logger) *Pruner {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	metrics.ComponentHealthSet(common.ComponentPruner, true)

	return &Pruner{
		index:  index,
		config: cfg,
		log:    log.WithComponent(common.ComponentPruner),
	}
}

// PruneChain removes the chain ending at tip back to the closest block whose parent still has
// another connected child. Without such a block the whole chain down to genesis is removed.
// Pruning a hash that is not a tip fails with an InvalidPruneTargetError and changes nothing.
func (p *Pruner) PruneChain(tip chainhash.Hash, removeTxs bool) (*chain.ChainPruned, error) {
	p.index.mu.Lock()
	defer p.index.mu.Unlock()

	return p.pruneChain(tip, removeTxs)
}

// AutoForkPrune prunes every tip that is at least the configured height difference below the
// highest tip. It returns the number of chains pruned.
func (p *Pruner) AutoForkPrune() (int, error) {
	p.index.mu.Lock()
	defer p.index.mu.Unlock()

	var tips []*chain.ChainRecord

	err := p.index.view(func(b *batch) error {
		var err error
		tips, err = b.tipRecords()
		return err
	})
	if err != nil {
		return 0, err
	}

	if len(tips) <= 1 {
		return 0, nil
	}

	reference := tips[0]
	for _, tip := range tips[1:] {
		if tip.Height > reference.Height ||
			(tip.Height == reference.Height && tip.Work.Cmp(reference.Work) > 0) {
			reference = tip
		}
	}

	pruned := 0
	for _, tip := range tips {
		if tip == reference {
			continue
		}

		deficit := reference.Height - tip.Height
		if deficit < p.config.Fork.GetHeightDifference() {
			continue
		}

		p.log.Infof("pruning fork chain: tip=%s height=%d reference=%s reference_height=%d",
			tip.Hash, tip.Height, reference.Hash, reference.Height)

		if _, err := p.pruneChain(tip.Hash, p.config.Fork.IncludeTxs); err != nil {
			// an earlier prune of this run can remove a tip listed above
			if errors.Is(err, ErrInvalidPruneTarget) {
				p.log.Warnf("skipping fork chain: tip=%s err=%v", tip.Hash, err)
				continue
			}
			p.log.Errorf("failed to prune fork chain: tip=%s err=%v", tip.Hash, err)
			return pruned, err
		}

		pruned++
	}

	if pruned > 0 {
		p.log.Infof("fork pruning finished: chains_pruned=%d", pruned)
	}

	return pruned, nil
}

// AutoOrphanPrune deletes the orphan headers older than the configured maximum age at now.
// It returns the number of headers deleted.
func (p *Pruner) AutoOrphanPrune(now time.Time) (int, error) {
	p.index.mu.Lock()
	defer p.index.mu.Unlock()

	maxAge := p.config.Orphan.MaxAge.Duration
	removed := 0

	err := p.index.update("orphan_prune", func(b *batch) error {
		removed = 0

		orphans, err := b.orphans(p.index.genesis.Hash)
		if err != nil {
			return err
		}

		for _, orphan := range orphans {
			if now.Sub(orphan.Timestamp) <= maxAge {
				continue
			}

			p.log.Debugf("removing orphan header: hash=%s timestamp=%s", orphan.Hash, orphan.Timestamp)

			if err := b.removeBlock(orphan.Hash); err != nil {
				p.log.Errorf("failed to remove orphan: hash=%s err=%v", orphan.Hash, err)
				return err
			}
			removed++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		blocksPrunedAdd(pruneKindOrphan, uint64(removed))
		p.log.Infof("orphan pruning finished: headers_removed=%d", removed)
	}

	return removed, nil
}

// pruneChain runs one prune in its own transaction. The caller holds the write lock.
func (p *Pruner) pruneChain(tip chainhash.Hash, removeTxs bool) (*chain.ChainPruned, error) {
	var event chain.ChainPruned

	err := p.index.update("prune_chain", func(b *batch) error {
		var err error
		event, err = b.pruneChain(tip, removeTxs)
		return err
	})
	if err != nil {
		return nil, err
	}

	blocksPrunedAdd(pruneKindChain, event.BlocksRemoved)

	p.log.Infof("chain pruned: tip=%s boundary=%s blocks_removed=%d",
		event.TipHash, event.BoundaryHash, event.BlocksRemoved)

	return &event, nil
}

// pruneChain walks back from tip removing blocks until it reaches a parent with another
// connected child. That parent becomes the boundary. When the walk removes the root, the root is the boundary.
func (b *batch) pruneChain(tip chainhash.Hash, removeTxs bool) (chain.ChainPruned, error) {
	isTip, err := b.tips.Contains(tip)
	if err != nil {
		return chain.ChainPruned{}, err
	}
	if !isTip {
		return chain.ChainPruned{}, &InvalidPruneTargetError{TipHash: tip}
	}

	event := chain.ChainPruned{TipHash: tip}
	current := tip

	for {
		header, err := b.header(current)
		if err != nil {
			return chain.ChainPruned{}, err
		}

		parent, err := b.record(header.PrevHash)
		if err != nil {
			return chain.ChainPruned{}, err
		}

		last := parent == nil
		if last {
			event.BoundaryHash = current
		} else {
			children, err := b.connectedChildren(parent.Hash)
			if err != nil {
				return chain.ChainPruned{}, err
			}
			if len(children) > 1 {
				last = true
				event.BoundaryHash = parent.Hash
			}
		}

		if removeTxs {
			if err := b.headers.RemoveTransactionsOf(b.tx, current); err != nil {
				return chain.ChainPruned{}, err
			}
		}

		if err := b.removeBlock(current); err != nil {
			return chain.ChainPruned{}, err
		}
		event.BlocksRemoved++

		if last {
			break
		}

		current = parent.Hash
	}

	b.pruned = append(b.pruned, event)

	return event, nil
}
