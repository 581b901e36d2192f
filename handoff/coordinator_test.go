package handoff

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/routeflow/types"
)

func TestCoordinator_PlanAppendsHistory(t *testing.T) {
	t.Parallel()

	planner := PlannerFunc(func(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error) {
		return &Context{
			FromWorker:    from,
			ToWorker:      to,
			Task:          task,
			WorkCompleted: workCompleted,
			Artifacts:     artifacts,
		}, nil
	})

	c := NewCoordinator(planner, nil)
	ctx := context.Background()

	first, err := c.Plan(ctx, "researcher", "writer", "report", "gathered data", nil)
	require.NoError(t, err)
	second, err := c.Plan(ctx, "writer", "reviewer", "report", "drafted text", map[string]string{"draft": "v1"})
	require.NoError(t, err)

	history := c.History()
	require.Len(t, history, 2)
	assert.Same(t, first, history[0])
	assert.Same(t, second, history[1])
	assert.False(t, history[0].CreatedAt.IsZero())
}

func TestCoordinator_PlannerErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("planner down")
	planner := PlannerFunc(func(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error) {
		return nil, boom
	})

	c := NewCoordinator(planner, nil)
	_, err := c.Plan(context.Background(), "a", "b", "t", "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.History())
}

func TestCoordinator_NoPlanner(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(nil, nil)
	_, err := c.Plan(context.Background(), "a", "b", "t", "", nil)
	require.Error(t, err)
	assert.Equal(t, types.ErrHandoffFailed, types.GetErrorCode(err))
}
