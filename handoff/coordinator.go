package handoff

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/routeflow/types"
)

// Coordinator plans hand-offs between pipeline stages and accumulates the
// resulting packets. The history is owned exclusively by the single
// sequential execution that created the coordinator; no cross-call sharing.
type Coordinator struct {
	planner Planner
	history []*Context
	logger  *zap.Logger
}

// NewCoordinator creates a coordinator around an external planner.
func NewCoordinator(planner Planner, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		planner: planner,
		logger:  logger.With(zap.String("component", "handoff_coordinator")),
	}
}

// Plan consults the planner for the packet describing the transition from
// one worker to the next and appends it to the history. Planner failure is
// fatal: an un-plannable hand-off leaves the pipeline in an undefined state.
func (c *Coordinator) Plan(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error) {
	if c.planner == nil {
		return nil, types.NewError(types.ErrHandoffFailed, "no planner configured")
	}

	hc, err := c.planner.Plan(ctx, from, to, task, workCompleted, artifacts)
	if err != nil {
		return nil, fmt.Errorf("handoff planning %s -> %s failed: %w", from, to, err)
	}
	if hc.CreatedAt.IsZero() {
		hc.CreatedAt = time.Now()
	}

	c.history = append(c.history, hc)
	c.logger.Debug("handoff planned",
		zap.String("from", hc.FromWorker),
		zap.String("to", hc.ToWorker),
		zap.Int("remaining_objectives", len(hc.RemainingObjectives)),
	)

	return hc, nil
}

// History returns the packets planned so far, in planning order.
func (c *Coordinator) History() []*Context {
	return c.history
}
