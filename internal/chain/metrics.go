package chain

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksConnected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerindexor_blocks_connected_total",
			Help: "Total number of blocks connected to the chain",
		},
	)

	blocksDisconnected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerindexor_blocks_disconnected_total",
			Help: "Total number of blocks disconnected from the chain",
		},
	)

	forksDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerindexor_forks_detected_total",
			Help: "Total number of forks detected",
		},
	)

	pathsAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerindexor_paths_allocated_total",
			Help: "Total number of chain paths allocated",
		},
	)

	pathsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "headerindexor_paths_released_total",
			Help: "Total number of chain paths released",
		},
	)

	chainTips = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "headerindexor_chain_tips",
			Help: "Current number of chain tips",
		},
	)

	longestChainHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "headerindexor_longest_chain_height",
			Help: "Height of the longest chain tip",
		},
	)

	blocksPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerindexor_blocks_pruned_total",
			Help: "Total number of blocks removed by pruning",
		},
		[]string{"kind"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "headerindexor_index_operation_duration_seconds",
			Help:    "Duration of chain index operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// opStats counts what one committed operation changed.
type opStats struct {
	connected      int
	disconnected   int
	forks          int
	pathsAllocated int
	pathsReleased  int
}

func (s *opStats) log() {
	blocksConnected.Add(float64(s.connected))
	blocksDisconnected.Add(float64(s.disconnected))
	forksDetected.Add(float64(s.forks))
	pathsAllocated.Add(float64(s.pathsAllocated))
	pathsReleased.Add(float64(s.pathsReleased))
}

func chainTipsLog(count int) {
	chainTips.Set(float64(count))
}

func longestChainHeightLog(height uint64) {
	longestChainHeight.Set(float64(height))
}

func blocksPrunedAdd(kind string, n uint64) {
	blocksPruned.WithLabelValues(kind).Add(float64(n))
}

func operationDurationLog(operation string, start time.Time) {
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
