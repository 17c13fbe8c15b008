package sbm

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spacedebris/sbm/internal/telemetry"
)

// Engine orchestrates the breakup algorithm end to end. It owns exactly one
// RNG stream: for a fixed seed, Run is single-threaded and deterministic;
// RunParallel shards work across goroutines that each get their own
// independently-seeded stream, forfeiting row-order parity with the serial
// run in exchange for wall-clock.
type Engine struct {
	MassConservation bool
	Logger           zerolog.Logger
	Metrics          *telemetry.Recorder

	sampler *sampler
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMassConservation enables the post-sampling mass-conservation pass.
func WithMassConservation(enabled bool) Option {
	return func(e *Engine) { e.MassConservation = enabled }
}

// WithLogger attaches a structured logger. Without this option the engine
// logs nothing.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.Logger = l }
}

// WithMetrics attaches a Prometheus recorder. Without this option the
// engine records nothing; Recorder methods are nil-safe regardless.
func WithMetrics(r *telemetry.Recorder) Option {
	return func(e *Engine) { e.Metrics = r }
}

// NewEngine constructs an Engine with its own RNG stream seeded from seed.
func NewEngine(seed int64, opts ...Option) *Engine {
	e := &Engine{
		Logger:  zerolog.Nop(),
		sampler: newSampler(seed),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the breakup algorithm for a single fragmentation event and
// returns the resulting Tensor. It returns only after every fragment has
// been sampled and, if enabled, mass conservation has run.
func (e *Engine) Run(kind SimulationKind, sats []Satellite, lMin float64) (Tensor, error) {
	descriptor, n, parentPos, parentVel, log, err := e.prepare(kind, sats, lMin)
	if err != nil {
		return Tensor{}, err
	}

	rows := make([]fragment, n)
	for i := range rows {
		rows[i] = sampleFragment(descriptor, lMin, parentPos, e.sampler)
	}

	rows = e.conserveAndLog(rows, descriptor, lMin, parentPos, log)

	for i := range rows {
		applyEjectionVelocity(&rows[i], descriptor, parentVel, e.sampler)
	}

	e.observe(kind, len(rows))
	log.Info().Int("final_fragment_count", len(rows)).Msg("breakup run complete")
	return Tensor{rows: rows}, nil
}

// RunParallel is the concurrent counterpart to Run: the independent
// per-fragment sampling and ejection-velocity loops are sharded across
// worker goroutines, each with its own RNG stream forked serially off the
// engine's sampler on the calling goroutine. Mass conservation still runs
// serially, on the engine's own stream, between the two sharded phases —
// it inherently can't parallelize since each decision depends on the
// running sum. Row order is not guaranteed to match Run for the same seed.
func (e *Engine) RunParallel(kind SimulationKind, sats []Satellite, lMin float64, workers int) (Tensor, error) {
	if workers < 1 {
		workers = 1
	}
	descriptor, n, parentPos, parentVel, log, err := e.prepare(kind, sats, lMin)
	if err != nil {
		return Tensor{}, err
	}

	rows := make([]fragment, n)
	parallelFor(n, workers, e.sampler, func(i int, s *sampler) {
		rows[i] = sampleFragment(descriptor, lMin, parentPos, s)
	})

	rows = e.conserveAndLog(rows, descriptor, lMin, parentPos, log)

	parallelFor(len(rows), workers, e.sampler, func(i int, s *sampler) {
		applyEjectionVelocity(&rows[i], descriptor, parentVel, s)
	})

	e.observe(kind, len(rows))
	log.Info().Int("final_fragment_count", len(rows)).Msg("breakup run complete (parallel)")
	return Tensor{rows: rows}, nil
}

// prepare resolves the event descriptor and fragment count shared by Run
// and RunParallel, and sets up a request-scoped logger.
func (e *Engine) prepare(kind SimulationKind, sats []Satellite, lMin float64) (*EventDescriptor, int, [3]float64, [3]float64, zerolog.Logger, error) {
	descriptor, err := NewEventDescriptor(kind, sats)
	if err != nil {
		return nil, 0, [3]float64{}, [3]float64{}, zerolog.Logger{}, err
	}
	n, err := descriptor.FragmentCount(lMin)
	if err != nil {
		return nil, 0, [3]float64{}, [3]float64{}, zerolog.Logger{}, err
	}
	if n < 0 {
		n = 0
	}
	runID := uuid.New()
	log := e.Logger.With().Str("run_id", runID.String()).Str("kind", kind.String()).Logger()
	log.Debug().Int("fragment_count", n).Bool("catastrophic", descriptor.IsCatastrophic).Msg("resolved event descriptor")
	return descriptor, n, sats[0].Position(), sats[0].Velocity(), log, nil
}

func (e *Engine) conserveAndLog(rows []fragment, d *EventDescriptor, lMin float64, parentPos [3]float64, log zerolog.Logger) []fragment {
	if !e.MassConservation {
		return rows
	}
	rows, removals, appends := conserveMass(rows, d, lMin, parentPos, e.sampler)
	log.Debug().Int("removed", removals).Int("appended", appends).Msg("mass conservation applied")
	if e.Metrics != nil {
		e.Metrics.ObserveConservationRemovals(removals)
		e.Metrics.ObserveConservationAppends(appends)
	}
	return rows
}

func (e *Engine) observe(kind SimulationKind, fragments int) {
	if e.Metrics != nil {
		e.Metrics.ObserveRun(kind.String(), fragments)
	}
}

// sampleFragment draws one fragment's length, A/M ratio, area, and mass.
// Velocity and the NaN sentinel row are set elsewhere.
func sampleFragment(d *EventDescriptor, lMin float64, parentPos [3]float64, s *sampler) fragment {
	f := newFragment()
	f[rowPosition] = parentPos

	lc := powerLaw(lMin, d.MaxCharacteristicLength, d.PowerLawExponent, s.uniform01())
	f.setScalar(rowCharacteristicLength, lc)

	am := amRatio(lc, d.EffectiveClass, s)
	f.setScalar(rowAreaToMass, am)

	area := computeArea(lc)
	f.setScalar(rowArea, area)

	f.setScalar(rowMass, area/am)
	return f
}

// applyEjectionVelocity draws the isotropic ejection velocity for a
// fragment and adds it to the parent's velocity.
func applyEjectionVelocity(f *fragment, d *EventDescriptor, parentVel [3]float64, s *sampler) {
	chi := math.Log10(f.scalar(rowAreaToMass))
	mu := d.DeltaVelocityOffset[0]*chi + d.DeltaVelocityOffset[1]
	const sigma = 0.4
	speed := math.Pow(10, s.normal(mu, sigma))
	ejection := scale3(sphereDirection(s), speed)
	f[rowVelocity] = add3(parentVel, ejection)
}

// conserveMass enforces a soft lower-bound mass conservation. When the
// initial sum overshoots input mass, fragments are dropped from the tail
// until the sum is at or below target (or the set empties — an empty
// result, not an error). Otherwise fragments are synthesized and appended
// until the sum exceeds target, and the one that caused the overshoot is
// discarded. No retry loop ever targets exact equality.
func conserveMass(rows []fragment, d *EventDescriptor, lMin float64, parentPos [3]float64, s *sampler) (result []fragment, removals, appends int) {
	sum := sumMass(rows)

	if sum > d.InputMass {
		for sum > d.InputMass && len(rows) > 0 {
			rows = rows[:len(rows)-1]
			removals++
			sum = sumMass(rows)
		}
		return rows, removals, 0
	}

	for sum <= d.InputMass {
		newRow := sampleFragment(d, lMin, parentPos, s)
		rows = append(rows, newRow)
		appends++
		sum += newRow.scalar(rowMass)
	}
	if len(rows) > 0 {
		rows = rows[:len(rows)-1]
	}
	return rows, removals, appends
}

func sumMass(rows []fragment) float64 {
	var sum float64
	for i := range rows {
		sum += rows[i].scalar(rowMass)
	}
	return sum
}

// parallelFor runs fn(i, workerSampler) for i in [0,n) across up to workers
// goroutines, each bound to its own RNG stream forked off base on the
// calling goroutine just before that worker starts — forking is done
// serially and only the caller touches base, so the set of per-worker
// seeds is itself deterministic for a fixed base stream and worker count.
func parallelFor(n, workers int, base *sampler, fn func(i int, s *sampler)) {
	if n == 0 {
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= n {
			break
		}
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		workerSampler := base.fork()
		wg.Add(1)
		go func(lo, hi int, s *sampler) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i, s)
			}
		}(lo, hi, workerSampler)
	}
	wg.Wait()
}
