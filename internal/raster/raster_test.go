package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRaster_SampleNearestNeighbor(t *testing.T) {
	grid := [][]float64{
		{1, 2},
		{3, 4},
	}
	r := NewMemoryRaster(grid, Bounds{West: 0, South: 0, East: 2, North: 2}, -9999, true)

	v, nodata := r.Sample(0.5, 1.5) // top-left quadrant
	assert.False(t, nodata)
	assert.Equal(t, 1.0, v)

	v, nodata = r.Sample(1.5, 0.5) // bottom-right quadrant
	assert.False(t, nodata)
	assert.Equal(t, 4.0, v)
}

func TestMemoryRaster_OutOfBoundsIsNodata(t *testing.T) {
	r := NewMemoryRaster([][]float64{{1}}, Bounds{West: 0, South: 0, East: 1, North: 1}, -9999, true)
	_, nodata := r.Sample(5, 5)
	assert.True(t, nodata)
}

func TestMemoryRaster_NodataValue(t *testing.T) {
	r := NewMemoryRaster([][]float64{{-9999, 2}}, Bounds{West: 0, South: 0, East: 2, North: 1}, -9999, true)
	_, nodata := r.Sample(0.1, 0.5)
	assert.True(t, nodata)
}

func TestBounds_Overlaps(t *testing.T) {
	b := Bounds{West: -10, South: -10, East: 10, North: 10}
	assert.True(t, b.Overlaps(5, 5, 15, 15))
	assert.False(t, b.Overlaps(20, 20, 30, 30))
}
