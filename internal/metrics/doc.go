// Package metrics provides Prometheus-based metrics collection for the
// execution engine: strategy execution counts and durations, per-unit
// failure counts for the parallel strategy, and hand-off plan counts.
//
// Metrics are registered through promauto under a caller-supplied
// namespace, so no manual Registry management is needed.
//
// This package is internal and should not be imported by external projects.
package metrics
