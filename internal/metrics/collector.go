package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector records execution-engine metrics.
type Collector struct {
	executionsTotal   *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
	unitFailuresTotal *prometheus.CounterVec
	handoffPlansTotal prometheus.Counter

	logger *zap.Logger
}

// NewCollector creates a collector with all metrics registered under the
// given namespace.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.executionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_executions_total",
			Help:      "Total number of strategy executions",
		},
		[]string{"strategy", "status"},
	)

	c.executionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_execution_duration_seconds",
			Help:      "Strategy execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"strategy"},
	)

	c.unitFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_failures_total",
			Help:      "Total number of isolated per-unit worker failures",
		},
		[]string{"strategy"},
	)

	c.handoffPlansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoff_plans_total",
			Help:      "Total number of planned pipeline hand-offs",
		},
	)

	return c
}

// RecordExecution records one strategy execution with its outcome.
func (c *Collector) RecordExecution(strategy, status string, duration time.Duration) {
	c.executionsTotal.WithLabelValues(strategy, status).Inc()
	if duration > 0 {
		c.executionDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	}
}

// RecordUnitFailure records one isolated per-unit worker failure.
func (c *Collector) RecordUnitFailure(strategy string) {
	c.unitFailuresTotal.WithLabelValues(strategy).Inc()
}

// RecordHandoffPlan records one planned hand-off.
func (c *Collector) RecordHandoffPlan() {
	c.handoffPlansTotal.Inc()
}
