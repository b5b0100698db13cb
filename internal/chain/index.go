package chain

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// Index maintains the fork-aware chain index on top of a key-value store.
//
// Every mutation runs in a single transaction under the write lock. Notifications collected
// during a mutation are published after the transaction commits and before the lock is released.
type Index struct {
	mu sync.RWMutex

	store     kv.Store
	headers   chain.HeaderStore
	publisher chain.Publisher
	genesis   *chain.Header
	log       *logger.Logger
}

// NewIndex creates a chain index. A nil publisher drops all notifications.
func NewIndex(
	store kv.Store,
	headers chain.HeaderStore,
	publisher chain.Publisher,
	genesis *chain.Header,
	log *logger.Logger,
) *Index {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	index := &Index{
		store:     store,
		headers:   headers,
		publisher: publisher,
		genesis:   genesis,
		log:       log.WithComponent(common.ComponentChainIndex),
	}

	metrics.ComponentHealthSet(common.ComponentChainIndex, true)

	return index
}

// Genesis returns the configured genesis header.
func (i *Index) Genesis() *chain.Header {
	return i.genesis
}

// Init prepares the index for use. Empty storage is seeded with the genesis block; otherwise the
// genesis block must already be connected.
func (i *Index) Init() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.update("init", func(b *batch) error {
		rec, err := b.record(i.genesis.Hash)
		if err != nil {
			return err
		}
		if rec != nil {
			i.log.Debugf("chain index already initialized: genesis=%s", i.genesis.Hash)
			return nil
		}

		count, err := i.headers.CountHeaders(b.tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: genesis %s is not connected in a store holding %d headers",
				ErrGenesisMismatch, i.genesis.Hash, count)
		}

		if err := i.headers.SaveHeader(b.tx, i.genesis); err != nil {
			return err
		}
		if _, err := b.connect(i.genesis, nil); err != nil {
			return err
		}

		i.log.Infof("chain index initialized: genesis=%s", i.genesis.Hash)

		return nil
	})
}

// SaveHeaders stores headers and connects every header whose parent is connected.
// Headers with an unknown parent are kept as orphans and connected once the parent arrives.
func (i *Index) SaveHeaders(headers ...*chain.Header) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.update("save_headers", func(b *batch) error {
		for _, header := range headers {
			if err := b.saveHeader(header, i.genesis.Hash); err != nil {
				i.log.Errorf("failed to save header: hash=%s err=%v", header.Hash, err)
				return err
			}
		}

		return nil
	})
}

// Connect stores header if needed and connects it below parent, together with its stored
// descendants. A nil parent connects header as the genesis block.
func (i *Index) Connect(header *chain.Header, parent *chain.ChainRecord) (*chain.ChainRecord, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var rec *chain.ChainRecord

	err := i.update("connect", func(b *batch) error {
		if err := i.headers.SaveHeader(b.tx, header); err != nil {
			return err
		}
		if parent != nil {
			if err := b.addChild(parent.Hash, header.Hash); err != nil {
				return err
			}
		}

		var err error
		rec, err = b.connect(header, parent)

		return err
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Disconnect removes the chain record of hash and of all its connected descendants.
// Headers stay stored.
func (i *Index) Disconnect(hash chainhash.Hash) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.update("disconnect", func(b *batch) error {
		return b.disconnect(hash)
	})
}

// RemoveHeaders unlinks, disconnects and deletes the given blocks.
func (i *Index) RemoveHeaders(hashes ...chainhash.Hash) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.update("remove_headers", func(b *batch) error {
		for _, hash := range hashes {
			if err := b.removeBlock(hash); err != nil {
				i.log.Errorf("failed to remove block: hash=%s err=%v", hash, err)
				return err
			}
		}

		return nil
	})
}

// Tips returns the chain tips in the order they appeared.
func (i *Index) Tips() ([]chainhash.Hash, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var tips []chainhash.Hash

	err := i.view(func(b *batch) error {
		var err error
		tips, err = b.tips.List()
		return err
	})

	return tips, err
}

// TipsDescendedFrom returns the tips whose chain runs through the path of hash.
// The result is empty when hash is not connected.
func (i *Index) TipsDescendedFrom(hash chainhash.Hash) ([]chainhash.Hash, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var result []chainhash.Hash

	err := i.view(func(b *batch) error {
		rec, err := b.record(hash)
		if err != nil || rec == nil {
			return err
		}

		tips, err := b.tipRecords()
		if err != nil {
			return err
		}

		for _, tip := range tips {
			descended, err := b.paths.IsAncestor(rec.PathID, tip.PathID)
			if err != nil {
				return err
			}
			if descended {
				result = append(result, tip.Hash)
			}
		}

		return nil
	})

	return result, err
}

// LongestChain returns the tip with the greatest height. Ties go to the tip that appeared first.
// It returns nil when the index holds no tips.
func (i *Index) LongestChain() (*chain.ChainInfo, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var info *chain.ChainInfo

	err := i.view(func(b *batch) error {
		tips, err := b.tipRecords()
		if err != nil {
			return err
		}

		chainTipsLog(len(tips))

		best := longest(tips)
		if best == nil {
			return nil
		}

		longestChainHeightLog(best.Height)

		info, err = b.chainInfo(best)
		return err
	})

	return info, err
}

// ChainInfo returns the header and chain data of a connected block, or nil when it is not connected.
func (i *Index) ChainInfo(hash chainhash.Hash) (*chain.ChainInfo, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var info *chain.ChainInfo

	err := i.view(func(b *batch) error {
		rec, err := b.record(hash)
		if err != nil || rec == nil {
			return err
		}

		info, err = b.chainInfo(rec)
		return err
	})

	return info, err
}

// ChainRecord returns the chain record of hash, or nil when the block is not connected.
func (i *Index) ChainRecord(hash chainhash.Hash) (*chain.ChainRecord, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var rec *chain.ChainRecord

	err := i.view(func(b *batch) error {
		var err error
		rec, err = b.record(hash)
		return err
	})

	return rec, err
}

// ChainPath returns the path with the given id, or nil when it does not exist.
func (i *Index) ChainPath(id chain.PathID) (*chain.ChainPath, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var path *chain.ChainPath

	err := i.view(func(b *batch) error {
		var err error
		path, err = b.paths.Get(id)
		return err
	})

	return path, err
}

// Header returns the stored header of hash, connected or not. It returns nil when it is not stored.
func (i *Index) Header(hash chainhash.Hash) (*chain.Header, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var header *chain.Header

	err := i.view(func(b *batch) error {
		var err error
		header, err = i.headers.GetHeader(b.tx, hash)
		return err
	})

	return header, err
}

// PrevBlock returns the parent hash of a stored block, or nil when hash is not stored.
func (i *Index) PrevBlock(hash chainhash.Hash) (*chainhash.Hash, error) {
	header, err := i.Header(hash)
	if err != nil || header == nil {
		return nil, err
	}

	prev := header.PrevHash

	return &prev, nil
}

// NextBlocks returns the stored children of hash, connected or not.
func (i *Index) NextBlocks(hash chainhash.Hash) ([]chainhash.Hash, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var children []chainhash.Hash

	err := i.view(func(b *batch) error {
		var err error
		children, err = b.children(hash)
		return err
	})

	return children, err
}

// FirstBlockInPath returns the block the path of hash starts at, or nil when hash is not connected.
func (i *Index) FirstBlockInPath(hash chainhash.Hash) (*chain.ChainInfo, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var info *chain.ChainInfo

	err := i.view(func(b *batch) error {
		rec, err := b.record(hash)
		if err != nil || rec == nil {
			return err
		}

		path, err := b.paths.MustGet(rec.PathID)
		if err != nil {
			return err
		}

		anchor, err := b.record(path.Anchor)
		if err != nil {
			return err
		}
		if anchor == nil {
			return corruption("anchor %s of chain path %d is not connected", path.Anchor, path.ID)
		}

		info, err = b.chainInfo(anchor)
		return err
	})

	return info, err
}

// OrphanBlocks returns the stored headers that are not connected and whose parent is not stored.
func (i *Index) OrphanBlocks() ([]*chain.Header, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var orphans []*chain.Header

	err := i.view(func(b *batch) error {
		var err error
		orphans, err = b.orphans(i.genesis.Hash)
		return err
	})

	return orphans, err
}

// State returns the chain info of every tip together with the stored block and transaction counts.
func (i *Index) State() (*chain.State, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	var state *chain.State

	err := i.view(func(b *batch) error {
		var err error
		state, err = i.state(b)
		return err
	})

	return state, err
}

// PublishState publishes the current chain state.
func (i *Index) PublishState() error {
	state, err := i.State()
	if err != nil {
		return err
	}

	i.publisher.PublishChainState(chain.ChainStateChanged{
		Tips:             state.Tips,
		BlockCount:       state.BlockCount,
		TransactionCount: state.TransactionCount,
	})

	return nil
}

// ResetTips clears the tip list. Blocks, records and paths are left in place, so the tip list no
// longer reflects the chain until the affected blocks are disconnected and connected again.
func (i *Index) ResetTips() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.update("reset_tips", func(b *batch) error {
		i.log.Warn("resetting chain tips")
		return b.tips.Reset()
	})
}

func (i *Index) state(b *batch) (*chain.State, error) {
	tips, err := b.tipRecords()
	if err != nil {
		return nil, err
	}

	state := &chain.State{Tips: make([]chain.ChainInfo, 0, len(tips))}
	for _, tip := range tips {
		info, err := b.chainInfo(tip)
		if err != nil {
			return nil, err
		}
		state.Tips = append(state.Tips, *info)
	}

	if state.BlockCount, err = i.headers.CountHeaders(b.tx); err != nil {
		return nil, err
	}
	if state.TransactionCount, err = i.headers.CountTransactions(b.tx); err != nil {
		return nil, err
	}

	chainTipsLog(len(tips))
	if best := longest(tips); best != nil {
		longestChainHeightLog(best.Height)
	}

	return state, nil
}

// update runs fn in a write transaction and publishes its notifications once it committed.
// The caller holds the write lock.
func (i *Index) update(operation string, fn func(b *batch) error) error {
	start := time.Now()

	var b *batch

	err := kv.Update(i.store, func(tx kv.Tx) error {
		b = newBatch(tx, i.headers, i.log)
		return fn(b)
	})

	operationDurationLog(operation, start)

	if err != nil {
		metrics.ErrorsInc(common.ComponentChainIndex, "error")
		return err
	}

	b.stats.log()

	for _, event := range b.forks {
		i.log.Infof("fork detected: block=%s parent=%s", event.BlockHash, event.ParentHash)
		i.publisher.PublishForkDetected(event)
	}
	for _, event := range b.pruned {
		i.publisher.PublishChainPruned(event)
	}

	return nil
}

func (i *Index) view(fn func(b *batch) error) error {
	return kv.View(i.store, func(tx kv.Tx) error {
		return fn(newBatch(tx, i.headers, i.log))
	})
}

// saveHeader stores header, links it to its parent and connects it when the parent is connected.
func (b *batch) saveHeader(header *chain.Header, genesis chainhash.Hash) error {
	if err := b.headers.SaveHeader(b.tx, header); err != nil {
		return err
	}

	if header.Hash == genesis {
		_, err := b.connect(header, nil)
		return err
	}

	if err := b.addChild(header.PrevHash, header.Hash); err != nil {
		return err
	}

	rec, err := b.record(header.Hash)
	if err != nil || rec != nil {
		return err
	}

	parent, err := b.record(header.PrevHash)
	if err != nil || parent == nil {
		return err
	}

	_, err = b.connect(header, parent)

	return err
}

// orphans returns the stored headers without a chain record whose parent header is not stored.
// The genesis block is never an orphan.
func (b *batch) orphans(genesis chainhash.Hash) ([]*chain.Header, error) {
	var orphans []*chain.Header

	err := b.headers.ForEachHeader(b.tx, func(header *chain.Header) error {
		if header.Hash == genesis {
			return nil
		}

		parent, err := b.headers.GetHeader(b.tx, header.PrevHash)
		if err != nil || parent != nil {
			return err
		}

		rec, err := b.record(header.Hash)
		if err != nil || rec != nil {
			return err
		}

		orphans = append(orphans, header)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orphans, nil
}

// longest returns the record with the greatest height, preferring the earliest on ties.
func longest(records []*chain.ChainRecord) *chain.ChainRecord {
	var best *chain.ChainRecord
	for _, rec := range records {
		if best == nil || rec.Height > best.Height {
			best = rec
		}
	}

	return best
}

type nopPublisher struct{}

func (nopPublisher) PublishForkDetected(chain.ForkDetected) {}
func (nopPublisher) PublishChainPruned(chain.ChainPruned) {}
func (nopPublisher) PublishChainState(chain.ChainStateChanged) {}
