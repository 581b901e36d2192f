package engine

import (
	"fmt"
	"strings"

	"github.com/BaSui01/routeflow/types"
)

// ExecutionError is a fatal, strategy-level failure: an unknown worker name
// for delegated, or an empty resolved worker set for parallel/sequential.
// It is raised before any work begins and is never used for a single
// worker's runtime failure inside a batch.
type ExecutionError struct {
	Code     types.ErrorCode
	Strategy string
	Worker   string
	Workers  []string
	Err      error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s strategy", e.Strategy)
	switch {
	case e.Worker != "":
		fmt.Fprintf(&b, ": worker not found: %q", e.Worker)
	case e.Code == types.ErrNoValidWorkers && e.Strategy == StrategySequential:
		fmt.Fprintf(&b, ": need at least one worker (candidates: %v)", e.Workers)
	case e.Code == types.ErrNoValidWorkers:
		fmt.Fprintf(&b, ": no valid workers (candidates: %v)", e.Workers)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the wrapped original error, if any.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func errWorkerNotFound(strategy, worker string) *ExecutionError {
	return &ExecutionError{
		Code:     types.ErrWorkerNotFound,
		Strategy: strategy,
		Worker:   worker,
	}
}

func errNoValidWorkers(strategy string, candidates []string) *ExecutionError {
	return &ExecutionError{
		Code:     types.ErrNoValidWorkers,
		Strategy: strategy,
		Workers:  candidates,
	}
}
