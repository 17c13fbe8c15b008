package sbm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spacecraft(mass float64, lc float64, pos, vel [3]float64) BasicSatellite {
	return BasicSatellite{Pos: pos, Vel: vel, MassKg: mass, LcMeters: lc, SatClass: Spacecraft}
}

// Direct evaluation of the fragment-count formula floor(6 * 0.1^-1.6) is
// 238 in double precision; this pins that value down explicitly rather
// than leaving it implicit in the formula under test.
func TestExplosionFragmentCountAtSmallLMin(t *testing.T) {
	sat := spacecraft(839, 1.0, [3]float64{}, [3]float64{})
	d, err := NewEventDescriptor(Explosion, []Satellite{sat})
	require.NoError(t, err)
	n, err := d.FragmentCount(0.1)
	require.NoError(t, err)
	assert.Equal(t, int(math.Floor(6*math.Pow(0.1, -1.6))), n)
	assert.Equal(t, 238, n)
}

func TestExplosionFragmentCountAtUnitLMin(t *testing.T) {
	sat := spacecraft(839, 1.0, [3]float64{}, [3]float64{})
	d, err := NewEventDescriptor(Explosion, []Satellite{sat})
	require.NoError(t, err)
	n, err := d.FragmentCount(1.0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestZeroLMinRejected(t *testing.T) {
	sat := spacecraft(839, 1.0, [3]float64{}, [3]float64{})
	d, err := NewEventDescriptor(Explosion, []Satellite{sat})
	require.NoError(t, err)
	_, err = d.FragmentCount(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCollisionFragmentCountNonCatastrophic(t *testing.T) {
	sat1 := spacecraft(1000, 1.0, [3]float64{}, [3]float64{0, 0, 0})
	sat2 := spacecraft(500, 0.5, [3]float64{}, [3]float64{10, 0, 0})
	d, err := NewEventDescriptor(Collision, []Satellite{sat1, sat2})
	require.NoError(t, err)
	assert.False(t, d.IsCatastrophic)
	n, err := d.FragmentCount(0.1)
	require.NoError(t, err)
	assert.Equal(t, 17, n)
	// input_mass for conservation is always the sum, independent of regime.
	assert.InDelta(t, 1500, d.InputMass, 1e-9)
}

func TestCollisionCatastrophicThreshold(t *testing.T) {
	// catastrophic_ratio = (m2*dv^2)/(2*m1*1000) >= 40 => catastrophic.
	sat1 := spacecraft(100, 1.0, [3]float64{}, [3]float64{0, 0, 0})
	sat2 := spacecraft(100, 0.5, [3]float64{}, [3]float64{300, 0, 0})
	d, err := NewEventDescriptor(Collision, []Satellite{sat1, sat2})
	require.NoError(t, err)
	ratio := (sat2.Mass() * 300 * 300) / (2 * sat1.Mass() * 1000)
	require.GreaterOrEqual(t, ratio, 40.0)
	assert.True(t, d.IsCatastrophic)
}

func TestCollisionOrdersByCharacteristicLength(t *testing.T) {
	// sat2 passed first but is the larger one; effective_class and Δv must
	// not depend on call-site ordering.
	big := spacecraft(10, 2.0, [3]float64{}, [3]float64{5, 0, 0})
	small := BasicSatellite{Pos: [3]float64{}, Vel: [3]float64{0, 0, 0}, MassKg: 5, LcMeters: 0.2, SatClass: RocketBody}
	d1, err := NewEventDescriptor(Collision, []Satellite{big, small})
	require.NoError(t, err)
	d2, err := NewEventDescriptor(Collision, []Satellite{small, big})
	require.NoError(t, err)
	assert.Equal(t, d1.IsCatastrophic, d2.IsCatastrophic)
	assert.Equal(t, RocketBody, d1.EffectiveClass)
	assert.Equal(t, d1.EffectiveClass, d2.EffectiveClass)
	assert.Equal(t, d1.MaxCharacteristicLength, d2.MaxCharacteristicLength)
}

func TestExplosionWrongSatelliteCount(t *testing.T) {
	sat := spacecraft(1, 1, [3]float64{}, [3]float64{})
	_, err := NewEventDescriptor(Explosion, []Satellite{sat, sat})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCollisionWrongSatelliteCount(t *testing.T) {
	sat := spacecraft(1, 1, [3]float64{}, [3]float64{})
	_, err := NewEventDescriptor(Collision, []Satellite{sat})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNonPositiveMassRejected(t *testing.T) {
	sat := spacecraft(0, 1, [3]float64{}, [3]float64{})
	_, err := NewEventDescriptor(Explosion, []Satellite{sat})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
