package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeMasses(t *testing.T) {
	mean, variance := SummarizeMasses([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, mean, 1e-12)
	assert.InDelta(t, 1.25, variance, 1e-12)
}

func TestSummarizeMassesEmpty(t *testing.T) {
	mean, variance := SummarizeMasses(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, variance)
}

func TestRecorderIsNilSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRun("EXPLOSION", 10)
		r.ObserveConservationRemovals(2)
		r.ObserveConservationAppends(3)
	})
}

func TestRecorderRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.ObserveRun("COLLISION", 17)
	r.ObserveConservationRemovals(1)
	r.ObserveConservationAppends(0)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
