package sbm

import "errors"

// Sentinel error kinds. Validation happens before any tensor allocation;
// once sampling begins there are no expected failure modes — RNG
// exhaustion or arithmetic anomalies are bugs, not conditions this package
// guards against.
var (
	// ErrInvalidInput covers a non-positive minimal characteristic length,
	// the wrong number of satellites for the event kind, and a non-positive
	// satellite mass.
	ErrInvalidInput = errors.New("sbm: invalid input")

	// ErrInvalidConfiguration covers an unrecognized SimulationKind or
	// SatClass arriving from external configuration.
	ErrInvalidConfiguration = errors.New("sbm: invalid configuration")
)
