package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	e := New()
	assert.Equal(t, defaultEventBufferSize, e.eventBufferSize)
	assert.EqualValues(t, 0, e.maxParallel, "unbounded by default")
	assert.NotNil(t, e.logger)
	assert.NotNil(t, e.tracer)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	e := New(
		WithLogger(zap.NewNop()),
		WithEventBufferSize(8),
		WithMaxParallelWorkers(3),
	)
	assert.Equal(t, 8, e.eventBufferSize)
	assert.EqualValues(t, 3, e.maxParallel)
}

func TestNew_InvalidOptionValuesIgnored(t *testing.T) {
	t.Parallel()

	e := New(
		WithLogger(nil),
		WithEventBufferSize(0),
		WithMaxParallelWorkers(-1),
	)
	assert.Equal(t, defaultEventBufferSize, e.eventBufferSize)
	assert.EqualValues(t, 0, e.maxParallel)
	assert.NotNil(t, e.logger)
}
