package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteParallel_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	e := New()
	reg := testRegistry(
		echoWorker("A"),
		failingWorker("B", errors.New("connection reset")),
	)

	result, err := e.ExecuteParallel(context.Background(), reg, []string{"A", "B"}, []string{"x", "y"})
	require.NoError(t, err, "one unit's failure must not fail the batch")

	assert.Contains(t, result.Combined, "A(x)")
	assert.Contains(t, result.Combined, "B: failed - connection reset")
	assert.Equal(t, "A(x)", result.Results["A"])
	assert.Equal(t, "B: failed - connection reset", result.Results["B"])
}

func TestExecuteParallel_NoValidWorkers(t *testing.T) {
	t.Parallel()

	e := New()
	_, err := e.ExecuteParallel(context.Background(), testRegistry(), []string{"x", "y"}, []string{"a", "b"})
	require.Error(t, err)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, StrategyParallel, execErr.Strategy)
	assert.Contains(t, strings.ToLower(err.Error()), "no valid workers")
}

func TestExecuteParallel_UnresolvedNamesDropped(t *testing.T) {
	t.Parallel()

	e := New()
	reg := testRegistry(echoWorker("A"))

	result, err := e.ExecuteParallel(context.Background(), reg, []string{"A", "ghost"}, []string{"x", "y"})
	require.NoError(t, err)

	assert.Equal(t, "A(x)", result.Results["A"])
	assert.NotContains(t, result.Combined, "ghost")
}

// The aggregate must preserve input order even when units complete in
// reverse order.
func TestExecuteParallel_AggregatePreservesInputOrder(t *testing.T) {
	t.Parallel()

	slow := NewFuncWorker("slow", "", func(ctx context.Context, prompt string) (string, error) {
		time.Sleep(50 * time.Millisecond)
		return "slow done", nil
	})
	fast := NewFuncWorker("fast", "", func(ctx context.Context, prompt string) (string, error) {
		return "fast done", nil
	})

	e := New()
	reg := testRegistry(slow, fast)

	result, err := e.ExecuteParallel(context.Background(), reg, []string{"slow", "fast"}, []string{"s", "f"})
	require.NoError(t, err)

	slowIdx := strings.Index(result.Combined, "slow:")
	fastIdx := strings.Index(result.Combined, "fast:")
	require.GreaterOrEqual(t, slowIdx, 0)
	require.GreaterOrEqual(t, fastIdx, 0)
	assert.Less(t, slowIdx, fastIdx, "aggregate must follow input order, not completion order")
}

func TestExecuteParallel_AllUnitsLaunchedBeforeJoin(t *testing.T) {
	t.Parallel()

	// Two workers that each wait for the other: only a launch-all-then-join
	// engine can finish this pair.
	var wg sync.WaitGroup
	wg.Add(2)
	rendezvous := func(ctx context.Context, prompt string) (string, error) {
		wg.Done()
		wg.Wait()
		return "met", nil
	}

	e := New()
	reg := testRegistry(
		NewFuncWorker("left", "", rendezvous),
		NewFuncWorker("right", "", rendezvous),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := e.ExecuteParallel(context.Background(), reg, []string{"left", "right"}, []string{"", ""})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("parallel units were not all launched before the join")
	}
}

func TestExecuteParallel_LengthMismatchZipsToShorter(t *testing.T) {
	t.Parallel()

	e := New()
	reg := testRegistry(echoWorker("A"), echoWorker("B"))

	result, err := e.ExecuteParallel(context.Background(), reg, []string{"A", "B"}, []string{"only"})
	require.NoError(t, err)

	assert.Equal(t, "A(only)", result.Results["A"])
	_, hasB := result.Results["B"]
	assert.False(t, hasB)
}

func TestStreamParallel_EventShape(t *testing.T) {
	t.Parallel()

	e := New()
	reg := testRegistry(
		echoWorker("A"),
		failingWorker("B", errors.New("boom")),
	)

	var mu sync.Mutex
	var progressTotals []int
	events, err := e.StreamParallel(context.Background(), reg, []string{"A", "B"}, []string{"x", "y"}, func(msg string, current, total int) {
		mu.Lock()
		progressTotals = append(progressTotals, current)
		mu.Unlock()
	})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 5, "2 starts + 2 completions + 1 terminal output")

	starts := 0
	messages := 0
	for _, ev := range collected[:4] {
		switch ev.Type {
		case EventAgentStart:
			starts++
		case EventAgentMessage:
			messages++
		default:
			t.Fatalf("unexpected non-terminal event type %s", ev.Type)
		}
	}
	assert.Equal(t, 2, starts)
	assert.Equal(t, 2, messages)

	terminal := collected[len(collected)-1]
	assert.Equal(t, EventWorkflowOutput, terminal.Type)
	assert.Contains(t, terminal.Text, "A(x)")
	assert.Contains(t, terminal.Text, "B: failed - boom")

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []int{1, 2}, progressTotals)
}

func TestStreamParallel_NoValidWorkersFailsBeforeStream(t *testing.T) {
	t.Parallel()

	e := New()
	events, err := e.StreamParallel(context.Background(), testRegistry(), []string{"ghost"}, []string{"x"}, nil)
	require.Error(t, err)
	assert.Nil(t, events)
}

func TestExecuteParallel_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	inFlight, peak := 0, 0
	track := func(ctx context.Context, prompt string) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return "done", nil
	}

	workers := make([]Worker, 0, 8)
	names := make([]string, 0, 8)
	tasks := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("w%d", i)
		workers = append(workers, NewFuncWorker(name, "", track))
		names = append(names, name)
		tasks = append(tasks, "t")
	}

	e := New(WithMaxParallelWorkers(2))
	_, err := e.ExecuteParallel(context.Background(), testRegistry(workers...), names, tasks)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2, "semaphore must bound concurrent units")
}
