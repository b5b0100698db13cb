package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Key-value engine metrics
	kvOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerindexor_kv_operations_total",
			Help: "Total number of key-value operations",
		},
		[]string{"engine", "operation"},
	)

	kvOperationTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "headerindexor_kv_operation_duration_seconds",
			Help:    "Duration of key-value operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine", "operation"},
	)

	kvErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerindexor_kv_errors_total",
			Help: "Total number of key-value errors",
		},
		[]string{"engine", "operation"},
	)

	// Import metrics
	HeadersImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerindexor_headers_imported_total",
			Help: "Total number of headers imported",
		},
		[]string{"source"},
	)

	ImportBatchTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "headerindexor_import_batch_duration_seconds",
			Help:    "Time taken to import a batch of headers",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	ImportRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "headerindexor_import_rate_headers_per_second",
			Help: "Current import rate in headers per second",
		},
		[]string{"source"},
	)

	// Process metrics
	startTime = time.Now()

	_ = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "headerindexor_uptime_seconds",
			Help: "Seconds since the process started",
		},
		func() float64 { return time.Since(startTime).Seconds() },
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "headerindexor_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "headerindexor_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)
)

// KVOperationLog records one key-value operation and its outcome.
func KVOperationLog(engine, operation string, started time.Time, err error) {
	kvOperations.WithLabelValues(engine, operation).Inc()
	kvOperationTime.WithLabelValues(engine, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		kvErrors.WithLabelValues(engine, operation).Inc()
	}
}

func HeadersImportedInc(source string, count int) {
	HeadersImported.WithLabelValues(source).Add(float64(count))
}

func ImportBatchTimeLog(source string, duration time.Duration) {
	ImportBatchTime.WithLabelValues(source).Observe(duration.Seconds())
}

func ImportRateLog(source string, rate float64) {
	ImportRate.WithLabelValues(source).Set(rate)
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}
