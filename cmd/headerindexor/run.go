package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/chain"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/metrics"
	"github.com/goran-ethernal/HeaderIndexor/pkg/api"
	pkgchain "github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const stopTimeout = 10 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the index with its pruning scheduler, API and metrics servers",
	RunE:  runNode,
}

func runNode(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := openNode()
	if err != nil {
		return err
	}
	defer n.close()

	log := n.log
	cfg := n.cfg

	if err := subscribeEventLogs(n); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if err := n.maintenance.Start(gctx); err != nil {
		return fmt.Errorf("failed to start maintenance: %w", err)
	}
	defer func() {
		if err := n.maintenance.Stop(); err != nil {
			log.Warnf("Failed to stop maintenance: %v", err)
		}
	}()

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, n.componentLogger(common.ComponentMetrics))
		if err := metricsServer.Start(gctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			if err := metricsServer.Stop(stopCtx); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	scheduler := chain.NewScheduler(n.index, n.pruner, cfg.Pruning, cfg.Events, n.componentLogger(common.ComponentScheduler))
	if err := scheduler.Start(gctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warnf("Failed to stop scheduler: %v", err)
		}
	}()

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, n.index, n.pruner, n.componentLogger(common.ComponentAPI))
		g.Go(func() error {
			return apiServer.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	log.Info("HeaderIndexor is running")

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("\n\nShutting down gracefully...")
	log.Info("HeaderIndexor stopped successfully")

	return nil
}

// subscribeEventLogs logs every index notification.
func subscribeEventLogs(n *node) error {
	log := n.componentLogger(common.ComponentEvents)

	if err := n.bus.OnForkDetected(func(event pkgchain.ForkDetected) {
		log.Infof("fork detected: block=%s parent=%s", event.BlockHash, event.ParentHash)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to fork events: %w", err)
	}

	if err := n.bus.OnChainPruned(func(event pkgchain.ChainPruned) {
		log.Infof("chain pruned: tip=%s boundary=%s removed=%d", event.TipHash, event.BoundaryHash, event.BlocksRemoved)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to prune events: %w", err)
	}

	if err := n.bus.OnChainState(func(event pkgchain.ChainStateChanged) {
		log.Infof("chain state: tips=%d blocks=%d transactions=%d",
			len(event.Tips), event.BlockCount, event.TransactionCount)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to state events: %w", err)
	}

	return nil
}
