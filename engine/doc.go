// Package engine executes a task against a pool of named specialist workers
// using one of three strategies: delegated (single worker), parallel
// (fan-out/fan-in across independent subtasks), and sequential (pipeline
// across workers, optionally chained through structured hand-off packets).
//
// Each strategy has a blocking and a streaming variant. Streaming variants
// produce a lazy, finite, non-restartable sequence of Events over a channel
// that is closed after the terminal event.
//
// Failure semantics are asymmetric on purpose: configuration and lookup
// failures (unknown worker, empty resolved worker set) raise ExecutionError
// before any work begins, while a runtime failure of an individual parallel
// unit is captured at the unit boundary and converted to an inline failure
// marker without touching sibling units.
package engine
