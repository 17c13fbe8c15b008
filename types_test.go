package sbm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSatClass(t *testing.T) {
	cases := map[string]SatClass{
		"ROCKET_BODY": RocketBody,
		"RB":          RocketBody,
		"SPACECRAFT":  Spacecraft,
		"SC":          Spacecraft,
		"SOC":         SOC,
		"DEBRIS":      Debris,
		"DEB":         Debris,
	}
	for in, want := range cases {
		got, err := ParseSatClass(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSatClass("ASTEROID")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseSimulationKind(t *testing.T) {
	got, err := ParseSimulationKind("EXPLOSION")
	assert.NoError(t, err)
	assert.Equal(t, Explosion, got)

	got, err = ParseSimulationKind("COLLISION")
	assert.NoError(t, err)
	assert.Equal(t, Collision, got)

	_, err = ParseSimulationKind("IMPLOSION")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestEffectiveClassCollapse(t *testing.T) {
	assert.Equal(t, RocketBody, RocketBody.effectiveClass())
	assert.Equal(t, Spacecraft, Spacecraft.effectiveClass())
	assert.Equal(t, Spacecraft, SOC.effectiveClass())
	assert.Equal(t, Spacecraft, Debris.effectiveClass())
}

func TestCharacteristicLengthFromMass(t *testing.T) {
	lc := CharacteristicLengthFromMass(1000)
	want := math.Pow((6.0*1000)/(92.937*math.Pi), 1.0/2.26)
	assert.InDelta(t, want, lc, 1e-12)
	assert.Greater(t, lc, 0.0)
}

func TestNewBasicSatelliteFromMass(t *testing.T) {
	sat := NewBasicSatelliteFromMass([3]float64{1, 2, 3}, [3]float64{4, 5, 6}, 250, SOC)
	assert.Equal(t, [3]float64{1, 2, 3}, sat.Position())
	assert.Equal(t, [3]float64{4, 5, 6}, sat.Velocity())
	assert.Equal(t, 250.0, sat.Mass())
	assert.Equal(t, SOC, sat.Class())
	assert.InDelta(t, CharacteristicLengthFromMass(250), sat.CharacteristicLength(), 1e-12)
}
