package chain

import (
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// batch is the state of one logical index operation running inside a single transaction.
// Notifications are collected here and published only after the transaction commits.
type batch struct {
	tx      kv.Tx
	headers chain.HeaderStore
	paths   pathRegistry
	tips    tipSet
	log     *logger.Logger

	stats  opStats
	forks  []chain.ForkDetected
	pruned []chain.ChainPruned
}

func newBatch(tx kv.Tx, headers chain.HeaderStore, log *logger.Logger) *batch {
	b := &batch{
		tx:      tx,
		headers: headers,
		tips:    tipSet{tx: tx},
		log:     log,
	}
	b.paths = pathRegistry{tx: tx, stats: &b.stats}

	return b
}

// record returns the chain record of hash, or nil when the block is not connected.
func (b *batch) record(hash chainhash.Hash) (*chain.ChainRecord, error) {
	value, err := b.tx.Read(keyChainRecord(hash))
	if err != nil || value == nil {
		return nil, err
	}

	return decodeRecord(hash, value)
}

func (b *batch) saveRecord(rec *chain.ChainRecord) error {
	value, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	return b.tx.Save(keyChainRecord(rec.Hash), value)
}

func (b *batch) removeRecord(hash chainhash.Hash) error {
	return b.tx.Remove(keyChainRecord(hash))
}

// header returns the stored header of hash and fails when it is missing.
func (b *batch) header(hash chainhash.Hash) (*chain.Header, error) {
	header, err := b.headers.GetHeader(b.tx, hash)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("%w: %s", ErrHeaderNotFound, hash)
	}

	return header, nil
}

// children returns the stored children of hash, connected or not.
func (b *batch) children(hash chainhash.Hash) ([]chainhash.Hash, error) {
	value, err := b.tx.Read(keyBlockNext(hash))
	if err != nil {
		return nil, err
	}

	return decodeHashes(value)
}

// connectedChildren returns the chain records of the connected children of hash, in child order.
func (b *batch) connectedChildren(hash chainhash.Hash) ([]*chain.ChainRecord, error) {
	children, err := b.children(hash)
	if err != nil {
		return nil, err
	}

	var connected []*chain.ChainRecord
	for _, child := range children {
		rec, err := b.record(child)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			connected = append(connected, rec)
		}
	}

	return connected, nil
}

func (b *batch) addChild(parent, child chainhash.Hash) error {
	children, err := b.children(parent)
	if err != nil {
		return err
	}
	if slices.Contains(children, child) {
		return nil
	}

	value, err := encodeHashes(append(children, child))
	if err != nil {
		return err
	}

	return b.tx.Save(keyBlockNext(parent), value)
}

func (b *batch) removeChild(parent, child chainhash.Hash) error {
	children, err := b.children(parent)
	if err != nil {
		return err
	}

	i := slices.Index(children, child)
	if i < 0 {
		return nil
	}

	children = slices.Delete(children, i, i+1)
	if len(children) == 0 {
		return b.tx.Remove(keyBlockNext(parent))
	}

	value, err := encodeHashes(children)
	if err != nil {
		return err
	}

	return b.tx.Save(keyBlockNext(parent), value)
}

// chainInfo joins a chain record with its stored header.
func (b *batch) chainInfo(rec *chain.ChainRecord) (*chain.ChainInfo, error) {
	header, err := b.headers.GetHeader(b.tx, rec.Hash)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, corruption("connected block %s has no stored header", rec.Hash)
	}

	return &chain.ChainInfo{
		Header:    header,
		Height:    rec.Height,
		Work:      rec.Work,
		SizeBytes: rec.SizeBytes,
	}, nil
}

// tipRecords returns the chain records of all tips in stored order.
func (b *batch) tipRecords() ([]*chain.ChainRecord, error) {
	tips, err := b.tips.List()
	if err != nil {
		return nil, err
	}

	records := make([]*chain.ChainRecord, 0, len(tips))
	for _, tip := range tips {
		rec, err := b.record(tip)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, corruption("tip %s is not connected", tip)
		}
		records = append(records, rec)
	}

	return records, nil
}
