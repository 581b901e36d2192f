package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var collectorNamespaceSeq uint64

// nextTestNamespace returns a unique namespace per test so promauto's
// default-registry registration never collides across tests.
func nextTestNamespace() string {
	return fmt.Sprintf("routeflow_test_%d", atomic.AddUint64(&collectorNamespaceSeq, 1))
}

func TestCollector_RecordExecution(t *testing.T) {
	c := NewCollector(nextTestNamespace(), zap.NewNop())

	c.RecordExecution("parallel", "ok", 250*time.Millisecond)
	c.RecordExecution("parallel", "ok", 100*time.Millisecond)
	c.RecordExecution("delegated", "config_error", 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.executionsTotal.WithLabelValues("parallel", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.executionsTotal.WithLabelValues("delegated", "config_error")))
}

func TestCollector_RecordUnitFailure(t *testing.T) {
	c := NewCollector(nextTestNamespace(), zap.NewNop())

	c.RecordUnitFailure("parallel")
	c.RecordUnitFailure("parallel")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.unitFailuresTotal.WithLabelValues("parallel")))
}

func TestCollector_RecordHandoffPlan(t *testing.T) {
	c := NewCollector(nextTestNamespace(), zap.NewNop())

	c.RecordHandoffPlan()

	assert.Equal(t, float64(1), testutil.ToFloat64(c.handoffPlansTotal))
}

func TestCollector_NilLogger(t *testing.T) {
	c := NewCollector(nextTestNamespace(), nil)
	assert.NotNil(t, c.logger)
}
