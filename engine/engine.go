package engine

import (
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/routeflow/internal/metrics"
)

// Strategy names used in errors, logs, metrics and spans.
const (
	StrategyDelegated  = "delegated"
	StrategyParallel   = "parallel"
	StrategySequential = "sequential"
)

const defaultEventBufferSize = 64

// Engine executes routing strategies over externally owned worker
// registries. An Engine is stateless across calls: the registry is passed
// to every call and never cached.
type Engine struct {
	logger          *zap.Logger
	metrics         *metrics.Collector
	tracer          trace.Tracer
	eventBufferSize int
	maxParallel     int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = collector }
}

// WithEventBufferSize sets the buffer size of streamed event channels.
func WithEventBufferSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.eventBufferSize = size
		}
	}
}

// WithMaxParallelWorkers bounds how many parallel units run concurrently.
// Zero means unbounded.
func WithMaxParallelWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxParallel = int64(n)
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:          zap.NewNop(),
		tracer:          otel.Tracer("github.com/BaSui01/routeflow/engine"),
		eventBufferSize: defaultEventBufferSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("component", "execution_engine"))
	return e
}

// newRunID generates the identifier stamped on every event and log line of
// one execution.
func newRunID() string {
	return uuid.New().String()
}
