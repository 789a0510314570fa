package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("smc-scheduling", prometheus.NewRegistry())

	m.IncConflict("slot already booked")
	m.IncConflict("slot already booked")
	m.IncDegraded("calendar")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationConflicts.WithLabelValues("slot already booked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DegradedFetches.WithLabelValues("calendar")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncConflict("x")
		m.IncDegraded("y")
		m.ObserveSlots("one_on_one", 3)
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "smc_scheduling_service", sanitize("SMC-Scheduling.Service"))
}
