package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_ParallelAggregateOrderAndIsolation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("aggregate preserves input order and isolates failures", prop.ForAll(
		func(workerCount int, failMask uint) bool {
			ctx := context.Background()

			reg := make(Registry, workerCount)
			names := make([]string, 0, workerCount)
			tasks := make([]string, 0, workerCount)
			for i := 0; i < workerCount; i++ {
				name := fmt.Sprintf("w%d", i)
				fails := failMask&(1<<uint(i)) != 0
				if fails {
					reg[name] = failingWorker(name, errors.New("unit error"))
				} else {
					reg[name] = echoWorker(name)
				}
				names = append(names, name)
				tasks = append(tasks, fmt.Sprintf("task-%d", i))
			}

			e := New()
			result, err := e.ExecuteParallel(ctx, reg, names, tasks)
			if err != nil {
				t.Logf("ExecuteParallel failed: %v", err)
				return false
			}

			// Sections appear in input order regardless of completion order.
			prev := -1
			for i := 0; i < workerCount; i++ {
				idx := strings.Index(result.Combined, fmt.Sprintf("w%d:\n", i))
				if idx < 0 {
					t.Logf("Worker w%d missing from aggregate", i)
					return false
				}
				if idx <= prev {
					t.Logf("Worker w%d out of input order", i)
					return false
				}
				prev = idx
			}

			// Failed units surface as markers, succeeded ones verbatim.
			for i := 0; i < workerCount; i++ {
				name := fmt.Sprintf("w%d", i)
				got := result.Results[name]
				if failMask&(1<<uint(i)) != 0 {
					want := fmt.Sprintf("%s: failed - unit error", name)
					if got != want {
						t.Logf("Expected failure marker %q, got %q", want, got)
						return false
					}
				} else {
					want := fmt.Sprintf("%s(task-%d)", name, i)
					if got != want {
						t.Logf("Expected success output %q, got %q", want, got)
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(1, 8),
		gen.UIntRange(0, 255),
	))

	properties.TestingRun(t)
}
