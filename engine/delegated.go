package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ExecuteDelegated runs a single named worker against the task and returns
// its output text verbatim. An unknown worker name raises ExecutionError;
// a runtime failure from the worker propagates unmodified — delegated
// execution has exactly one unit of work, so there is nothing to isolate it
// from.
func (e *Engine) ExecuteDelegated(ctx context.Context, workers Registry, workerName, task string) (string, error) {
	ctx, span := e.tracer.Start(ctx, "engine.ExecuteDelegated",
		trace.WithAttributes(
			attribute.String("strategy", StrategyDelegated),
			attribute.String("worker", workerName),
		))
	defer span.End()

	worker, ok := workers[workerName]
	if !ok {
		e.recordExecution(StrategyDelegated, "config_error", 0)
		return "", errWorkerNotFound(StrategyDelegated, workerName)
	}

	runID := newRunID()
	e.logger.Debug("delegated execution started",
		zap.String("run_id", runID),
		zap.String("worker", workerName),
	)

	start := time.Now()
	output, err := worker.Run(ctx, task)
	if err != nil {
		e.recordExecution(StrategyDelegated, "failed", time.Since(start))
		return "", err
	}

	e.recordExecution(StrategyDelegated, "ok", time.Since(start))
	return output, nil
}

// StreamDelegated is the streaming variant of ExecuteDelegated. It emits,
// in order: an optional progress notification, one AgentMessage carrying
// the worker's output, and a terminal WorkflowOutput with the same text.
// Lookup failure is returned before any event is emitted — a failed setup
// never yields a partial stream.
func (e *Engine) StreamDelegated(ctx context.Context, workers Registry, workerName, task string, progress ProgressFunc) (<-chan Event, error) {
	worker, ok := workers[workerName]
	if !ok {
		return nil, errWorkerNotFound(StrategyDelegated, workerName)
	}

	runID := newRunID()
	events := make(chan Event, e.eventBufferSize)

	go func() {
		defer close(events)

		ctx, span := e.tracer.Start(ctx, "engine.StreamDelegated",
			trace.WithAttributes(
				attribute.String("strategy", StrategyDelegated),
				attribute.String("worker", workerName),
			))
		defer span.End()

		if progress != nil {
			progress(fmt.Sprintf("executing %s...", workerName), 0, 1)
		}

		start := time.Now()
		output, err := worker.Run(ctx, task)
		if err != nil {
			e.recordExecution(StrategyDelegated, "failed", time.Since(start))
			events <- newErrorEvent(runID, err)
			return
		}

		e.recordExecution(StrategyDelegated, "ok", time.Since(start))
		events <- newAgentMessage(runID, workerName, output)
		events <- newWorkflowOutput(runID, output)
	}()

	return events, nil
}

func (e *Engine) recordExecution(strategy, status string, d time.Duration) {
	if e.metrics != nil {
		e.metrics.RecordExecution(strategy, status, d)
	}
}
