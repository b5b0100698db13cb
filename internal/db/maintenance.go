package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
)

// Maintenance serializes key-value transactions against SQLite upkeep.
type Maintenance interface {
	// Start launches periodic maintenance when it is enabled.
	Start(ctx context.Context) error
	// Stop cancels periodic maintenance and waits for a running pass.
	Stop() error
	// AcquireOperationLock blocks while a maintenance pass runs.
	// The returned func releases the lock.
	AcquireOperationLock() func()
	// GetMetrics reports the outcome of past passes.
	GetMetrics() MaintenanceMetrics
	// RunMaintenance runs one pass immediately.
	RunMaintenance(ctx context.Context) error
}

var (
	_ Maintenance = (*NoOpMaintenance)(nil)
	_ Maintenance = (*MaintenanceCoordinator)(nil)
)

// NoOpMaintenance is used by engines that manage their own files.
type NoOpMaintenance struct{}

func (*NoOpMaintenance) Start(context.Context) error         { return nil }
func (*NoOpMaintenance) Stop() error                         { return nil }
func (*NoOpMaintenance) RunMaintenance(context.Context) error { return nil }
func (*NoOpMaintenance) AcquireOperationLock() func()        { return func() {} }
func (*NoOpMaintenance) GetMetrics() MaintenanceMetrics      { return MaintenanceMetrics{} }

// MaintenanceMetrics summarizes past maintenance passes.
type MaintenanceMetrics struct {
	LastMaintenanceTime  time.Time
	MaintenanceCount     uint64
	LastMaintenanceError error
}

// MaintenanceCoordinator checkpoints the WAL and vacuums the header database.
// Transactions hold the read side of opLock and a maintenance pass holds the write side.
type MaintenanceCoordinator struct {
	db     *sql.DB
	config config.MaintenanceConfig
	dbPath string
	log    *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu sync.Mutex
	stats   MaintenanceMetrics
}

// NewMaintenanceCoordinator returns a coordinator for the database at dbPath,
// or a no-op when cfg is nil.
func NewMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg *config.MaintenanceConfig,
	log *logger.Logger,
) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}

	return newMaintenanceCoordinator(dbPath, db, *cfg, log)
}

func newMaintenanceCoordinator(
	dbPath string,
	db *sql.DB,
	cfg config.MaintenanceConfig,
	log *logger.Logger,
) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		db:     db,
		config: cfg,
		dbPath: dbPath,
		log:    log.WithComponent(common.ComponentMaintenance),
	}
}

// Start runs an optional startup pass and then one pass per check interval.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.log.Info("background maintenance is disabled")
		return nil
	}

	interval := m.config.CheckInterval.Duration
	if interval <= 0 {
		return fmt.Errorf("maintenance check interval must be positive, got %v", interval)
	}

	ctx, m.cancel = context.WithCancel(ctx)

	if m.config.VacuumOnStartup {
		if err := m.RunMaintenance(ctx); err != nil {
			m.log.Warnf("startup maintenance failed: %v", err)
		}
	}

	m.wg.Add(1)
	go m.maintenanceWorker(ctx, interval)

	m.log.Infof("background maintenance started: interval=%v checkpoint=%s", interval, m.config.WALCheckpointMode)

	return nil
}

// Stop is safe to call when Start was never called.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.log.Info("background maintenance stopped")

	return nil
}

func (m *MaintenanceCoordinator) maintenanceWorker(ctx context.Context, interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.RunMaintenance(ctx); err != nil {
				m.log.Warnf("periodic maintenance failed: %v", err)
			}
		}
	}
}

// RunMaintenance waits for in-flight transactions, then checkpoints the WAL and vacuums.
// Both steps run even when the first one fails.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	sizeBefore := m.totalSize()

	err := errors.Join(m.walCheckpoint(), m.vacuum())

	duration := time.Since(start)
	sizeAfter := m.totalSize()

	m.statsMu.Lock()
	m.stats.LastMaintenanceTime = time.Now().UTC()
	m.stats.MaintenanceCount++
	m.stats.LastMaintenanceError = err
	m.statsMu.Unlock()

	observeMaintenance(duration, err)

	if err != nil {
		m.log.Warnf("maintenance finished with errors: duration=%v err=%v", duration, err)
		return err
	}

	fileSize.Set(float64(sizeAfter))

	if sizeBefore > sizeAfter {
		reclaimed := uint64(sizeBefore - sizeAfter)
		spaceReclaimed.Set(float64(reclaimed))
		m.log.Infof("maintenance reclaimed %d MB", common.BytesToMB(reclaimed))
	}

	if entries, err := m.countEntries(); err != nil {
		m.log.Debugf("failed to count key-value entries: %v", err)
	} else {
		kvEntries.Set(float64(entries))
	}

	m.log.Infof("maintenance finished: duration=%v size=%d", duration, sizeAfter)

	return nil
}

func (m *MaintenanceCoordinator) totalSize() int64 {
	size, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnf("failed to read database size: %v", err)
	}

	return size
}

func (m *MaintenanceCoordinator) countEntries() (int64, error) {
	var count int64
	if err := m.db.QueryRow("SELECT COUNT(*) FROM " + KVTable).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// walCheckpoint is skipped outside WAL journal mode.
func (m *MaintenanceCoordinator) walCheckpoint() error {
	var mode string
	if err := m.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return fmt.Errorf("failed to read journal mode: %w", err)
	}
	if !strings.EqualFold(mode, "wal") {
		return nil
	}

	var busy, frames, checkpointed int
	query := fmt.Sprintf("PRAGMA wal_checkpoint(%s)", m.config.WALCheckpointMode)
	if err := m.db.QueryRow(query).Scan(&busy, &frames, &checkpointed); err != nil {
		return fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	walCheckpoints.WithLabelValues(strings.ToLower(m.config.WALCheckpointMode)).Inc()

	if busy > 0 {
		m.log.Warnf("WAL checkpoint left busy pages: mode=%s frames=%d checkpointed=%d",
			m.config.WALCheckpointMode, frames, checkpointed)
	} else {
		m.log.Debugf("WAL checkpoint done: mode=%s frames=%d checkpointed=%d",
			m.config.WALCheckpointMode, frames, checkpointed)
	}

	return nil
}

func (m *MaintenanceCoordinator) vacuum() error {
	if err := Vacuum(m.db); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum while the database is locked: %w", err)
		}
		return err
	}

	vacuumRuns.Inc()

	return nil
}

// AcquireOperationLock implements Maintenance.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// GetMetrics implements Maintenance.
func (m *MaintenanceCoordinator) GetMetrics() MaintenanceMetrics {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()

	return m.stats
}
