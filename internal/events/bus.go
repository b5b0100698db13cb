// Package events delivers chain index notifications to in-process subscribers.
package events

import (
	evbus "github.com/asaskevich/EventBus"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// Event topics.
const (
	TopicForkDetected = "chain:fork-detected"
	TopicChainPruned  = "chain:pruned"
	TopicChainState   = "chain:state"
)

var _ chain.Publisher = (*Bus)(nil)

// Bus is a chain.Publisher over an in-process event bus.
// Subscribers run asynchronously so publishing never waits on them.
type Bus struct {
	bus evbus.Bus
	log *logger.Logger
}

// New creates an event bus.
func New(log *logger.Logger) *Bus {
	return &Bus{
		bus: evbus.New(),
		log: log.WithComponent(common.ComponentEvents),
	}
}

// PublishForkDetected implements chain.Publisher.
func (b *Bus) PublishForkDetected(event chain.ForkDetected) {
	b.log.Debugf("publishing fork detected: block=%s parent=%s", event.BlockHash, event.ParentHash)
	b.bus.Publish(TopicForkDetected, event)
}

// PublishChainPruned implements chain.Publisher.
func (b *Bus) PublishChainPruned(event chain.ChainPruned) {
	b.log.Debugf("publishing chain pruned: tip=%s boundary=%s removed=%d",
		event.TipHash, event.BoundaryHash, event.BlocksRemoved)
	b.bus.Publish(TopicChainPruned, event)
}

// PublishChainState implements chain.Publisher.
func (b *Bus) PublishChainState(event chain.ChainStateChanged) {
	b.bus.Publish(TopicChainState, event)
}

// OnForkDetected subscribes fn to fork notifications.
func (b *Bus) OnForkDetected(fn func(chain.ForkDetected)) error {
	return b.bus.SubscribeAsync(TopicForkDetected, fn, true)
}

// OnChainPruned subscribes fn to prune notifications.
func (b *Bus) OnChainPruned(fn func(chain.ChainPruned)) error {
	return b.bus.SubscribeAsync(TopicChainPruned, fn, true)
}

// OnChainState subscribes fn to state notifications.
func (b *Bus) OnChainState(fn func(chain.ChainStateChanged)) error {
	return b.bus.SubscribeAsync(TopicChainState, fn, true)
}

// Wait blocks until every delivered notification has been handled.
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
