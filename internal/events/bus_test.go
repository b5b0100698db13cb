package events

import (
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/stretchr/testify/require"
)

func TestBus_Delivery(t *testing.T) {
	bus := New(logger.NewNopLogger())

	var (
		mu     sync.Mutex
		forks  []chain.ForkDetected
		prunes []chain.ChainPruned
		states []chain.ChainStateChanged
	)

	require.NoError(t, bus.OnForkDetected(func(e chain.ForkDetected) {
		mu.Lock()
		defer mu.Unlock()
		forks = append(forks, e)
	}))
	require.NoError(t, bus.OnChainPruned(func(e chain.ChainPruned) {
		mu.Lock()
		defer mu.Unlock()
		prunes = append(prunes, e)
	}))
	require.NoError(t, bus.OnChainState(func(e chain.ChainStateChanged) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, e)
	}))

	fork := chain.ForkDetected{BlockHash: chainhash.Hash{2}, ParentHash: chainhash.Hash{1}}
	pruned := chain.ChainPruned{TipHash: chainhash.Hash{3}, BoundaryHash: chainhash.Hash{1}, BlocksRemoved: 2}
	state := chain.ChainStateChanged{BlockCount: 10, TransactionCount: 20}

	bus.PublishForkDetected(fork)
	bus.PublishForkDetected(fork)
	bus.PublishChainPruned(pruned)
	bus.PublishChainState(state)
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []chain.ForkDetected{fork, fork}, forks)
	require.Equal(t, []chain.ChainPruned{pruned}, prunes)
	require.Equal(t, []chain.ChainStateChanged{state}, states)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New(logger.NewNopLogger())

	require.NotPanics(t, func() {
		bus.PublishForkDetected(chain.ForkDetected{})
		bus.PublishChainPruned(chain.ChainPruned{})
		bus.PublishChainState(chain.ChainStateChanged{})
		bus.Wait()
	})
}
