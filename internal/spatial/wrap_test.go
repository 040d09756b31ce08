package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLongitude(t *testing.T) {
	assert.InDelta(t, -179.0, NormalizeLongitude(181), 1e-9)
	assert.InDelta(t, 179.0, NormalizeLongitude(-181), 1e-9)
	assert.InDelta(t, 10.0, NormalizeLongitude(10), 1e-9)
}

func TestWrapsAntimeridian(t *testing.T) {
	assert.True(t, WrapsAntimeridian(360))
	assert.False(t, WrapsAntimeridian(180))
}

func TestReciprocalBearing(t *testing.T) {
	assert.InDelta(t, 270.0, ReciprocalBearing(90), 1e-9)
	assert.InDelta(t, 90.0, ReciprocalBearing(270), 1e-9)
}

func TestBearingAndOctant(t *testing.T) {
	b := Bearing(0, 0, 1, 0) // due north
	assert.InDelta(t, 0.0, b, 1e-6)
	assert.Equal(t, "N", Octant(b))

	b = Bearing(0, 0, 0, 1) // due east
	assert.InDelta(t, 90.0, b, 1e-6)
	assert.Equal(t, "E", Octant(b))
}
