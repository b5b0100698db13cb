package chain

import (
	"context"
	"sync"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
)

// Scheduler runs fork pruning, orphan pruning and state publication in the background.
type Scheduler struct {
	index  *Index
	pruner *Pruner
	config config.PruningConfig
	events config.EventsConfig
	log    *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
}

// NewScheduler creates a scheduler for index and pruner.
func NewScheduler(
	index *Index,
	pruner *Pruner,
	pruning config.PruningConfig,
	events config.EventsConfig,
	log *logger.Logger,
) *Scheduler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &Scheduler{
		index:  index,
		pruner: pruner,
		config: pruning,
		events: events,
		log:    log.WithComponent(common.ComponentScheduler),
		now:    time.Now,
	}
}

// Start launches one worker per enabled job. Workers run until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.config.Fork.Enabled {
		s.start(ctx, "fork-prune", s.config.Fork.Interval.Duration, func() error {
			_, err := s.pruner.AutoForkPrune()
			return err
		})
	}

	if s.config.Orphan.Enabled {
		s.start(ctx, "orphan-prune", s.config.Orphan.Interval.Duration, func() error {
			_, err := s.pruner.AutoOrphanPrune(s.now())
			return err
		})
	}

	if s.events.StatePublishInterval.Duration > 0 {
		s.start(ctx, "state-publish", s.events.StatePublishInterval.Duration, s.index.PublishState)
	}

	metrics.ComponentHealthSet(common.ComponentScheduler, true)

	return nil
}

// Stop cancels all workers and waits for them to return.
func (s *Scheduler) Stop() error {
	if s.cancel == nil {
		return nil // Not started
	}

	s.log.Info("Stopping scheduler...")
	s.cancel()
	s.wg.Wait()
	s.log.Info("Scheduler stopped")

	return nil
}

func (s *Scheduler) start(ctx context.Context, job string, interval time.Duration, fn func() error) {
	if interval <= 0 {
		s.log.Warnf("job %s has no interval, not scheduling it", job)
		return
	}

	s.wg.Add(1)
	go s.worker(ctx, job, interval, fn)

	s.log.Infof("scheduled job %s: interval=%v", job, interval)
}

func (s *Scheduler) worker(ctx context.Context, job string, interval time.Duration, fn func() error) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			s.log.Debugf("running job %s", job)
			if err := fn(); err != nil {
				s.log.Warnf("job %s failed: %v", job, err)
				metrics.ErrorsInc(common.ComponentScheduler, "warning")
			}
		}
	}
}
