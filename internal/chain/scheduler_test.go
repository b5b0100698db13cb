package chain

import (
	"context"
	"testing"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobs(t *testing.T) {
	publisher := &recordingPublisher{}
	ti := newTestIndex(t, publisher)
	ti.extend("G", "A", "A1")
	ti.extend("G", "B")
	require.NoError(t, ti.SaveHeaders(newHeader("X", "missing")))

	heightDifference := uint64(1)
	pruning := config.PruningConfig{
		Fork: config.ForkPruningConfig{
			Enabled:          true,
			Interval:         common.NewDuration(10 * time.Millisecond),
			HeightDifference: &heightDifference,
		},
		Orphan: config.OrphanPruningConfig{
			Enabled:  true,
			Interval: common.NewDuration(10 * time.Millisecond),
			MaxAge:   common.NewDuration(time.Minute),
		},
	}
	events := config.EventsConfig{StatePublishInterval: common.NewDuration(10 * time.Millisecond)}

	pruner := NewPruner(ti.Index, pruning, logger.NewNopLogger())
	scheduler := NewScheduler(ti.Index, pruner, pruning, events, logger.NewNopLogger())

	require.NoError(t, scheduler.Start(context.Background()))

	require.Eventually(t, func() bool {
		tips, err := ti.Tips()
		return err == nil && len(tips) == 1 && tips[0] == hashOf("A1")
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		orphans, err := ti.OrphanBlocks()
		return err == nil && len(orphans) == 0
	}, 5*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return publisher.stateCount() > 0
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, scheduler.Stop())
	require.NoError(t, scheduler.Stop())
	ti.requireConsistent()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	ti := newTestIndex(t, nil)
	scheduler := NewScheduler(ti.Index, NewPruner(ti.Index, config.PruningConfig{}, nil), config.PruningConfig{},
		config.EventsConfig{}, logger.NewNopLogger())

	require.NoError(t, scheduler.Stop())
}

func TestScheduler_CancelledContextStopsWorkers(t *testing.T) {
	ti := newTestIndex(t, nil)
	events := config.EventsConfig{StatePublishInterval: common.NewDuration(time.Millisecond)}
	scheduler := NewScheduler(ti.Index, NewPruner(ti.Index, config.PruningConfig{}, logger.NewNopLogger()),
		config.PruningConfig{}, events, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, scheduler.Start(ctx))
	cancel()

	done := make(chan struct{})
	go func() {
		scheduler.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not stop after context cancellation")
	}
}
