package handoff

import (
	"context"
	"time"
)

// Context is a structured packet describing one pipeline transition. It is
// created once per stage transition by the planner, formatted into the next
// worker's prompt, and retained only in the hand-off history.
type Context struct {
	FromWorker          string            `json:"from_worker"`
	ToWorker            string            `json:"to_worker"`
	Task                string            `json:"task"`
	WorkCompleted       string            `json:"work_completed"`
	Artifacts           map[string]string `json:"artifacts,omitempty"`
	RemainingObjectives []string          `json:"remaining_objectives,omitempty"`
	SuccessCriteria     []string          `json:"success_criteria,omitempty"`
	ToolRequirements    []string          `json:"tool_requirements,omitempty"`
	EstimatedEffort     string            `json:"estimated_effort,omitempty"`
	QualityChecklist    []string          `json:"quality_checklist,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
}

// Planner decides what the next pipeline stage should be told. It is an
// external collaborator; its failure is fatal to the enclosing sequential
// execution, unlike per-unit parallel failures.
type Planner interface {
	Plan(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error)
}

// PlannerFunc adapts a function to the Planner interface.
type PlannerFunc func(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error)

// Plan implements Planner.
func (f PlannerFunc) Plan(ctx context.Context, from, to, task, workCompleted string, artifacts map[string]string) (*Context, error) {
	return f(ctx, from, to, task, workCompleted, artifacts)
}
