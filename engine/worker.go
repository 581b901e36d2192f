package engine

import "context"

// Worker is a named capability a strategy can invoke: it turns a prompt into
// a response and may fail. Workers are owned by an external registry; the
// engine looks them up and invokes them, never creates or destroys them.
type Worker interface {
	// Name returns the worker's registry name.
	Name() string
	// Description returns a human-readable description of the capability.
	Description() string
	// Run executes the worker against a prompt and returns its output text.
	Run(ctx context.Context, prompt string) (string, error)
}

// Registry maps worker names to workers. The engine treats it as read-only
// during a single execution and never caches it across calls.
type Registry map[string]Worker

// RunFunc is the signature of a worker's execution function.
type RunFunc func(ctx context.Context, prompt string) (string, error)

// FuncWorker adapts a function to the Worker interface.
type FuncWorker struct {
	name        string
	description string
	fn          RunFunc
}

// NewFuncWorker creates a worker backed by a function.
func NewFuncWorker(name, description string, fn RunFunc) *FuncWorker {
	return &FuncWorker{
		name:        name,
		description: description,
		fn:          fn,
	}
}

func (w *FuncWorker) Name() string        { return w.name }
func (w *FuncWorker) Description() string { return w.description }

func (w *FuncWorker) Run(ctx context.Context, prompt string) (string, error) {
	return w.fn(ctx, prompt)
}

// ProgressFunc receives best-effort progress updates from streaming
// strategies. It is synchronous and fire-and-forget; a nil ProgressFunc
// never changes execution outcome.
type ProgressFunc func(message string, current, total int)
