package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/routeflow/handoff"
	"github.com/BaSui01/routeflow/types"
)

// SequentialOptions configures a sequential execution.
type SequentialOptions struct {
	// EnableHandoffs switches the pipeline from raw-output chaining to
	// structured hand-off packets between stages.
	EnableHandoffs bool
	// Coordinator plans the hand-off packets. Required when EnableHandoffs
	// is set.
	Coordinator *handoff.Coordinator
}

// SequentialResult carries the last stage's output and, when hand-offs were
// enabled, the accumulated hand-off history for observability.
type SequentialResult struct {
	Output   string
	Handoffs []*handoff.Context
}

// ExecuteSequential runs the resolved workers as a pipeline: the first
// worker receives the task, each subsequent worker receives the previous
// worker's raw output (or, with hand-offs enabled, the formatted hand-off
// packet) as its prompt. Unresolved names are skipped and logged; an empty
// resolved list is fatal. Stage n+1 never starts before stage n's output is
// available.
func (e *Engine) ExecuteSequential(ctx context.Context, workers Registry, workerNames []string, task string, opts SequentialOptions) (*SequentialResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.ExecuteSequential",
		trace.WithAttributes(
			attribute.String("strategy", StrategySequential),
			attribute.Int("candidates", len(workerNames)),
			attribute.Bool("handoffs", opts.EnableHandoffs),
		))
	defer span.End()

	resolved, err := e.resolveSequential(workers, workerNames, opts)
	if err != nil {
		e.recordExecution(StrategySequential, "config_error", 0)
		return nil, err
	}

	runID := newRunID()
	start := time.Now()

	result, err := e.runPipeline(ctx, runID, resolved, task, opts, nil)
	if err != nil {
		e.recordExecution(StrategySequential, "failed", time.Since(start))
		return nil, err
	}

	e.recordExecution(StrategySequential, "ok", time.Since(start))
	return result, nil
}

// StreamSequential is the streaming variant of ExecuteSequential. It emits
// one AgentMessage per completed stage and a terminal WorkflowOutput with
// the last stage's output.
func (e *Engine) StreamSequential(ctx context.Context, workers Registry, workerNames []string, task string, opts SequentialOptions) (<-chan Event, error) {
	resolved, err := e.resolveSequential(workers, workerNames, opts)
	if err != nil {
		return nil, err
	}

	runID := newRunID()
	events := make(chan Event, e.eventBufferSize)

	go func() {
		defer close(events)

		ctx, span := e.tracer.Start(ctx, "engine.StreamSequential",
			trace.WithAttributes(
				attribute.String("strategy", StrategySequential),
				attribute.Int("stages", len(resolved)),
				attribute.Bool("handoffs", opts.EnableHandoffs),
			))
		defer span.End()

		start := time.Now()
		result, err := e.runPipeline(ctx, runID, resolved, task, opts, events)
		if err != nil {
			e.recordExecution(StrategySequential, "failed", time.Since(start))
			events <- newErrorEvent(runID, err)
			return
		}

		e.recordExecution(StrategySequential, "ok", time.Since(start))
		events <- newWorkflowOutput(runID, result.Output)
	}()

	return events, nil
}

// resolveSequential resolves worker names in order, silently (logged)
// skipping unresolved names, and validates the hand-off configuration.
func (e *Engine) resolveSequential(workers Registry, workerNames []string, opts SequentialOptions) ([]Worker, error) {
	if opts.EnableHandoffs && opts.Coordinator == nil {
		return nil, types.NewError(types.ErrHandoffFailed, "handoffs enabled but no coordinator supplied").
			WithStrategy(StrategySequential)
	}

	resolved := make([]Worker, 0, len(workerNames))
	for _, name := range workerNames {
		worker, ok := workers[name]
		if !ok {
			e.logger.Warn("worker not in registry, skipping stage", zap.String("worker", name))
			continue
		}
		resolved = append(resolved, worker)
	}

	if len(resolved) == 0 {
		return nil, errNoValidWorkers(StrategySequential, workerNames)
	}
	return resolved, nil
}

// runPipeline executes the resolved stages in strict order. With hand-offs
// enabled, each stage transition consults the coordinator and the next
// prompt is the formatted packet rather than the raw output. A planner
// failure propagates as fatal — an un-plannable hand-off leaves the
// pipeline in an undefined state, unlike an independent parallel unit's
// failure.
func (e *Engine) runPipeline(ctx context.Context, runID string, resolved []Worker, task string, opts SequentialOptions, events chan<- Event) (*SequentialResult, error) {
	prompt := task
	var output string
	var workCompleted strings.Builder
	artifacts := make(map[string]string)

	for i, worker := range resolved {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stageOutput, err := worker.Run(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s) failed: %w", i+1, worker.Name(), err)
		}
		output = stageOutput

		e.logger.Debug("pipeline stage completed",
			zap.String("run_id", runID),
			zap.Int("stage", i+1),
			zap.String("worker", worker.Name()),
		)
		if events != nil {
			events <- newAgentMessage(runID, worker.Name(), stageOutput)
		}

		last := i == len(resolved)-1
		if last {
			break
		}

		if !opts.EnableHandoffs {
			prompt = stageOutput
			continue
		}

		fmt.Fprintf(&workCompleted, "%s: %s\n", worker.Name(), stageOutput)
		artifacts[worker.Name()] = stageOutput

		next := resolved[i+1]
		hc, err := opts.Coordinator.Plan(ctx, worker.Name(), next.Name(), task, workCompleted.String(), artifacts)
		if err != nil {
			return nil, err
		}
		if e.metrics != nil {
			e.metrics.RecordHandoffPlan()
		}
		prompt = handoff.FormatInput(hc)
	}

	result := &SequentialResult{Output: output}
	if opts.EnableHandoffs {
		result.Handoffs = opts.Coordinator.History()
	}
	return result, nil
}
