package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ParallelResult carries the aggregated output of a parallel execution
// together with the raw per-worker results for callers that need
// individual outcomes. Failed units appear as inline failure markers, not
// errors.
type ParallelResult struct {
	Combined string
	Results  map[string]string
}

// parallelUnit is one resolved (worker, subtask) pair. The index pins the
// unit's slot in the input-ordered aggregate regardless of completion order.
type parallelUnit struct {
	index   int
	name    string
	subtask string
	worker  Worker
}

// ExecuteParallel fans the positionally paired (name, subtask) units out
// across all resolvable workers and joins on all of them. Unresolved names
// are dropped and logged; an empty resolved set is the single fatal
// condition. Each unit's runtime failure is captured at the unit boundary
// and converted to a "<name>: failed - <reason>" marker — one failing unit
// never cancels, aborts, or delays its siblings. The aggregate preserves
// input order regardless of completion order.
func (e *Engine) ExecuteParallel(ctx context.Context, workers Registry, workerNames, subtasks []string) (*ParallelResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.ExecuteParallel",
		trace.WithAttributes(
			attribute.String("strategy", StrategyParallel),
			attribute.Int("candidates", len(workerNames)),
		))
	defer span.End()

	units, err := e.resolveParallelUnits(workers, workerNames, subtasks)
	if err != nil {
		e.recordExecution(StrategyParallel, "config_error", 0)
		return nil, err
	}

	runID := newRunID()
	start := time.Now()

	results := e.runUnits(ctx, runID, units, nil, nil)

	e.recordExecution(StrategyParallel, "ok", time.Since(start))
	return aggregateResults(units, results), nil
}

// StreamParallel is the streaming variant of ExecuteParallel. It emits one
// start-notification per unit at launch, one AgentMessage per unit in
// completion order (success text or failure marker), and a terminal
// WorkflowOutput carrying the input-ordered aggregate. The progress
// observer, when supplied, receives (message, completed, total) updates as
// units finish.
func (e *Engine) StreamParallel(ctx context.Context, workers Registry, workerNames, subtasks []string, progress ProgressFunc) (<-chan Event, error) {
	units, err := e.resolveParallelUnits(workers, workerNames, subtasks)
	if err != nil {
		return nil, err
	}

	runID := newRunID()
	events := make(chan Event, e.eventBufferSize)

	go func() {
		defer close(events)

		ctx, span := e.tracer.Start(ctx, "engine.StreamParallel",
			trace.WithAttributes(
				attribute.String("strategy", StrategyParallel),
				attribute.Int("units", len(units)),
			))
		defer span.End()

		start := time.Now()
		results := e.runUnits(ctx, runID, units, events, progress)
		e.recordExecution(StrategyParallel, "ok", time.Since(start))

		events <- newWorkflowOutput(runID, aggregateResults(units, results).Combined)
	}()

	return events, nil
}

// resolveParallelUnits pairs names with subtasks positionally and keeps the
// pairs whose worker resolves in the registry. A length mismatch is zipped
// to the shorter list; both drops are logged, never individually fatal.
func (e *Engine) resolveParallelUnits(workers Registry, workerNames, subtasks []string) ([]parallelUnit, error) {
	pairs := len(workerNames)
	if len(subtasks) < pairs {
		e.logger.Warn("subtask list shorter than worker list, extra workers dropped",
			zap.Int("workers", len(workerNames)),
			zap.Int("subtasks", len(subtasks)),
		)
		pairs = len(subtasks)
	}

	units := make([]parallelUnit, 0, pairs)
	for i := 0; i < pairs; i++ {
		name := workerNames[i]
		worker, ok := workers[name]
		if !ok {
			e.logger.Warn("worker not in registry, dropping unit", zap.String("worker", name))
			continue
		}
		units = append(units, parallelUnit{
			index:   len(units),
			name:    name,
			subtask: subtasks[i],
			worker:  worker,
		})
	}

	if len(units) == 0 {
		return nil, errNoValidWorkers(StrategyParallel, workerNames)
	}
	return units, nil
}

// runUnits launches every unit before awaiting any of them, then joins with
// a failure-isolating gather: each unit's error is caught at the unit
// boundary and converted to its failure marker. When events is non-nil,
// start notifications are emitted at launch and per-unit results in
// completion order.
func (e *Engine) runUnits(ctx context.Context, runID string, units []parallelUnit, events chan<- Event, progress ProgressFunc) []string {
	var sem *semaphore.Weighted
	if e.maxParallel > 0 {
		sem = semaphore.NewWeighted(e.maxParallel)
	}

	results := make([]string, len(units))
	total := len(units)
	var completed atomic.Int64
	var wg sync.WaitGroup

	for _, unit := range units {
		if events != nil {
			events <- newAgentStart(runID, unit.name)
		}

		wg.Add(1)
		go func(u parallelUnit) {
			defer wg.Done()

			text := e.runUnit(ctx, u, sem)
			results[u.index] = text

			done := int(completed.Add(1))
			if events != nil {
				events <- newAgentMessage(runID, u.name, text)
			}
			if progress != nil {
				progress(fmt.Sprintf("%s finished", u.name), done, total)
			}
		}(unit)
	}

	wg.Wait()
	return results
}

// runUnit executes one unit and returns its success text or failure marker.
func (e *Engine) runUnit(ctx context.Context, u parallelUnit, sem *semaphore.Weighted) string {
	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			return failureMarker(u.name, err)
		}
		defer sem.Release(1)
	}

	output, err := u.worker.Run(ctx, u.subtask)
	if err != nil {
		e.logger.Warn("parallel unit failed",
			zap.String("worker", u.name),
			zap.Error(err),
		)
		if e.metrics != nil {
			e.metrics.RecordUnitFailure(StrategyParallel)
		}
		return failureMarker(u.name, err)
	}
	return output
}

// failureMarker is the literal in-band representation of a failed unit.
func failureMarker(name string, err error) string {
	return fmt.Sprintf("%s: failed - %v", name, err)
}

// aggregateResults combines per-unit results into one blob, each section
// headed by the worker's name, in original input order.
func aggregateResults(units []parallelUnit, results []string) *ParallelResult {
	var b strings.Builder
	byWorker := make(map[string]string, len(units))

	for i, unit := range units {
		fmt.Fprintf(&b, "%s:\n%s\n\n", unit.name, results[i])
		byWorker[unit.name] = results[i]
	}

	return &ParallelResult{
		Combined: strings.TrimRight(b.String(), "\n"),
		Results:  byWorker,
	}
}
