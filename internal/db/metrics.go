package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "headerindexor"
	metricsSubsystem = "sqlite"
)

var (
	maintenanceRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_runs_total",
		Help:      "Maintenance passes by outcome",
	}, []string{"outcome"})

	maintenanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_duration_seconds",
		Help:      "Duration of maintenance passes",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8), //nolint:mnd
	})

	maintenanceLastRun = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "maintenance_last_run_timestamp_seconds",
		Help:      "Unix time of the last maintenance pass",
	})

	spaceReclaimed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "space_reclaimed_bytes",
		Help:      "Bytes reclaimed by the last maintenance pass",
	})

	walCheckpoints = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "wal_checkpoints_total",
		Help:      "WAL checkpoints by mode",
	}, []string{"mode"})

	vacuumRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "vacuums_total",
		Help:      "Completed VACUUM statements",
	})

	fileSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "file_size_bytes",
		Help:      "Combined size of the database, WAL and shared memory files",
	})

	kvEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "kv_entries",
		Help:      "Key-value entries stored in the database",
	})
)

// observeMaintenance records the outcome of one maintenance pass.
func observeMaintenance(duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	maintenanceRuns.WithLabelValues(outcome).Inc()
	maintenanceDuration.Observe(duration.Seconds())
	maintenanceLastRun.SetToCurrentTime()
}
