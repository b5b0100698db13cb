package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ForkDetected is published when a connected block gets a second connected child.
type ForkDetected struct {
	BlockHash  chainhash.Hash
	ParentHash chainhash.Hash
}

// ChainPruned is published after a fork chain has been pruned.
// BoundaryHash is the fork point the walk stopped at, or the root itself when the walk removed it.
type ChainPruned struct {
	TipHash       chainhash.Hash
	BoundaryHash  chainhash.Hash
	BlocksRemoved uint64
}

// ChainStateChanged carries a periodic summary of the index.
type ChainStateChanged struct {
	Tips             []ChainInfo
	BlockCount       uint64
	TransactionCount uint64
}

// Publisher delivers index notifications. Implementations must not block.
type Publisher interface {
	PublishForkDetected(event ForkDetected)
	PublishChainPruned(event ChainPruned)
	PublishChainState(event ChainStateChanged)
}
