// Package telemetry instruments breakup runs: Prometheus metrics for
// fragment counts and mass-conservation work, plus summary statistics over
// a run's fragment population. It knows nothing about the sbm package's
// types, only the plain numbers the engine hands it, so it can be reused
// by any caller that wants to observe a run (the CLI, a batch sweep, a
// future service front-end).
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/mat"
)

// Recorder exposes Prometheus metrics for a population of breakup runs. A
// nil *Recorder is valid and every method becomes a no-op, the same
// optional-collaborator posture the engine takes with its logger.
type Recorder struct {
	runs                  *prometheus.CounterVec
	fragmentCount         *prometheus.HistogramVec
	conservationRemovals  prometheus.Histogram
	conservationAppends   prometheus.Histogram
}

// NewRecorder registers the run metrics on reg and returns a Recorder. Pass
// prometheus.NewRegistry() for an isolated registry (tests, batch sweeps)
// or prometheus.DefaultRegisterer to expose them on the process's default
// /metrics handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sbm",
			Name:      "runs_total",
			Help:      "Number of breakup runs executed, by simulation kind.",
		}, []string{"kind"}),
		fragmentCount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sbm",
			Name:      "fragment_count",
			Help:      "Fragment count produced per run, after mass conservation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"kind"}),
		conservationRemovals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sbm",
			Name:      "mass_conservation_removals",
			Help:      "Fragments removed from the tail of a run to conserve mass.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		conservationAppends: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sbm",
			Name:      "mass_conservation_appends",
			Help:      "Fragments synthesized and appended to a run to conserve mass.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
	}
	reg.MustRegister(r.runs, r.fragmentCount, r.conservationRemovals, r.conservationAppends)
	return r
}

// ObserveRun records one completed run.
func (r *Recorder) ObserveRun(kind string, fragments int) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(kind).Inc()
	r.fragmentCount.WithLabelValues(kind).Observe(float64(fragments))
}

// ObserveConservationRemovals records how many trailing fragments a run's
// mass-conservation pass removed.
func (r *Recorder) ObserveConservationRemovals(n int) {
	if r == nil {
		return
	}
	r.conservationRemovals.Observe(float64(n))
}

// ObserveConservationAppends records how many fragments a run's
// mass-conservation pass synthesized before trimming the overshoot.
func (r *Recorder) ObserveConservationAppends(n int) {
	if r == nil {
		return
	}
	r.conservationAppends.Observe(float64(n))
}

// SummarizeMasses returns the mean and (population) variance of masses,
// computed via gonum's dense vector algebra rather than a hand-rolled
// running sum, so the reduction reads the same way the rest of the domain
// stack's linear algebra does.
func SummarizeMasses(masses []float64) (mean, variance float64) {
	n := float64(len(masses))
	if n == 0 {
		return 0, 0
	}
	v := mat.NewVecDense(len(masses), masses)
	ones := make([]float64, len(masses))
	for i := range ones {
		ones[i] = 1
	}
	sum := mat.Dot(v, mat.NewVecDense(len(ones), ones))
	mean = sum / n

	diffs := make([]float64, len(masses))
	for i, m := range masses {
		diffs[i] = m - mean
	}
	d := mat.NewVecDense(len(diffs), diffs)
	variance = mat.Dot(d, d) / n
	return mean, variance
}
