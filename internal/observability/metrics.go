package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "waypoint_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AggregateRecomputeLatency records how long the in-transaction counter
	// recompute takes, by the table that triggered it.
	AggregateRecomputeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "waypoint_aggregate_recompute_latency_seconds",
		Help:    "Latency of destination aggregate recomputation in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})

	// ActionToggles counts like/save toggles by target kind, action type and outcome.
	ActionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_action_toggles_total",
		Help: "Total number of like/save toggles by target kind, type and outcome",
	}, []string{"target_kind", "action_type", "outcome"})

	// RatingsSubmitted counts rating create/update/delete operations.
	RatingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_ratings_total",
		Help: "Total number of rating operations",
	}, []string{"operation"})

	// AssetOperations counts image store operations by kind and result.
	AssetOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_asset_operations_total",
		Help: "Total number of asset store operations",
	}, []string{"operation", "result"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// TrackRecompute returns a function that records aggregate recompute latency
// when called.
func TrackRecompute(trigger string) func() {
	start := time.Now()
	return func() {
		AggregateRecomputeLatency.WithLabelValues(trigger).Observe(time.Since(start).Seconds())
	}
}
