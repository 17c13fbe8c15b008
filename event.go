package sbm

import (
	"fmt"
	"math"
)

// EventDescriptor resolves the constants a fragmentation event needs from
// its SimulationKind and the satellites involved.
type EventDescriptor struct {
	Kind SimulationKind

	PowerLawExponent        float64
	DeltaVelocityOffset     [2]float64
	MaxCharacteristicLength float64
	EffectiveClass          SatClass

	// InputMass is the reference mass the mass-conservation stage targets.
	// For collisions this is always m1+m2, regardless of the catastrophic
	// regime — see fragmentCountMass for how that differs.
	InputMass float64

	// fragmentCountMass is the mass fragment_count is computed from. For
	// explosions it equals InputMass; for collisions it only equals
	// InputMass in the catastrophic regime.
	fragmentCountMass float64

	IsCatastrophic bool // only meaningful for Collision
}

// NewEventDescriptor resolves an EventDescriptor for kind from sats.
// Explosions require exactly one satellite, collisions exactly two;
// anything else is ErrInvalidInput, as is a non-positive satellite mass.
func NewEventDescriptor(kind SimulationKind, sats []Satellite) (*EventDescriptor, error) {
	switch kind {
	case Explosion:
		return newExplosionDescriptor(sats)
	case Collision:
		return newCollisionDescriptor(sats)
	default:
		return nil, fmt.Errorf("%w: unrecognized simulation kind %v", ErrInvalidConfiguration, kind)
	}
}

func newExplosionDescriptor(sats []Satellite) (*EventDescriptor, error) {
	if len(sats) != 1 {
		return nil, fmt.Errorf("%w: explosion requires exactly 1 satellite, got %d", ErrInvalidInput, len(sats))
	}
	sat := sats[0]
	if sat.Mass() <= 0 {
		return nil, fmt.Errorf("%w: satellite mass must be positive", ErrInvalidInput)
	}
	return &EventDescriptor{
		Kind:                    Explosion,
		PowerLawExponent:        -2.6,
		DeltaVelocityOffset:     [2]float64{0.2, 1.85},
		MaxCharacteristicLength: sat.CharacteristicLength(),
		EffectiveClass:          sat.Class().effectiveClass(),
		InputMass:               sat.Mass(),
		fragmentCountMass:       sat.Mass(),
	}, nil
}

func newCollisionDescriptor(sats []Satellite) (*EventDescriptor, error) {
	if len(sats) != 2 {
		return nil, fmt.Errorf("%w: collision requires exactly 2 satellites, got %d", ErrInvalidInput, len(sats))
	}
	sat1, sat2 := sats[0], sats[1]
	if sat1.Mass() <= 0 || sat2.Mass() <= 0 {
		return nil, fmt.Errorf("%w: satellite mass must be positive", ErrInvalidInput)
	}

	// Order so sat1 is the larger (by characteristic length) of the two.
	if sat2.CharacteristicLength() > sat1.CharacteristicLength() {
		sat1, sat2 = sat2, sat1
	}

	deltaV := norm3(sub3(sat1.Velocity(), sat2.Velocity()))
	catastrophicRatio := (sat2.Mass() * deltaV * deltaV) / (2.0 * sat1.Mass() * 1000.0)

	isCatastrophic := catastrophicRatio >= 40.0
	fragmentCountMass := sat2.Mass() * deltaV / 1000.0
	if isCatastrophic {
		fragmentCountMass = sat1.Mass() + sat2.Mass()
	}

	effectiveClass := Spacecraft
	if sat1.Class() == RocketBody || sat2.Class() == RocketBody {
		effectiveClass = RocketBody
	}

	maxLc := sat1.CharacteristicLength()
	if sat2.CharacteristicLength() > maxLc {
		maxLc = sat2.CharacteristicLength()
	}

	return &EventDescriptor{
		Kind:                    Collision,
		PowerLawExponent:        -2.71,
		DeltaVelocityOffset:     [2]float64{0.9, 2.9},
		MaxCharacteristicLength: maxLc,
		EffectiveClass:          effectiveClass,
		InputMass:               sat1.Mass() + sat2.Mass(),
		fragmentCountMass:       fragmentCountMass,
		IsCatastrophic:          isCatastrophic,
	}, nil
}

// FragmentCount returns the number of debris fragments the event produces
// for a given minimal characteristic length, before any mass-conservation
// adjustment. lMin <= 0 is ErrInvalidInput: the formula raises lMin to a
// negative power, so zero or negative values are rejected up front rather
// than producing a nonsensical count.
func (d *EventDescriptor) FragmentCount(lMin float64) (int, error) {
	if lMin <= 0 {
		return 0, fmt.Errorf("%w: minimal characteristic length must be positive", ErrInvalidInput)
	}
	switch d.Kind {
	case Explosion:
		const s = 1.0
		return int(math.Floor(6 * s * math.Pow(lMin, -1.6))), nil
	case Collision:
		n := 0.1 * math.Pow(d.fragmentCountMass, 0.75) * math.Pow(lMin, -1.71)
		return int(math.Floor(n)), nil
	default:
		return 0, fmt.Errorf("%w: unrecognized simulation kind %v", ErrInvalidConfiguration, d.Kind)
	}
}
