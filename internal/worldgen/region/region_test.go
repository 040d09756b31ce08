package region

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) orb.Polygon {
	ring := orb.Ring{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}
	return orb.Polygon{ring}
}

func TestUnion_CollectsMemberPolygons(t *testing.T) {
	g := tilegraph.NewGraph()
	a := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Polygon: square(0, 0, 1), Grouping: tilegraph.Continent})
	b := g.CreateTile(&tilegraph.Tile{Site: orb.Point{1, 0}, Polygon: square(1, 0, 1), Grouping: tilegraph.Continent})

	mp := Union([]*tilegraph.Tile{a, b})
	require.Len(t, mp, 2)
}

func TestRepair_ClosesUnclosedRing(t *testing.T) {
	open := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	repaired, ok := Repair(open)
	require.True(t, ok)
	ring := repaired[0]
	assert.Equal(t, ring[0], ring[len(ring)-1])
}

func TestRepair_FallsBackToConvexHullWhenDegenerate(t *testing.T) {
	degenerate := orb.Polygon{{{0, 0}, {1, 1}}}
	_, ok := Repair(degenerate)
	assert.False(t, ok)
}

func TestGroupByGrouping_SeparatesLandAndOcean(t *testing.T) {
	g := tilegraph.NewGraph()
	g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Polygon: square(0, 0, 1), Grouping: tilegraph.Continent})
	g.CreateTile(&tilegraph.Tile{Site: orb.Point{1, 0}, Polygon: square(1, 0, 1), Grouping: tilegraph.Ocean})

	groups := GroupByGrouping(g)
	assert.Len(t, groups[tilegraph.Continent], 1)
	assert.Len(t, groups[tilegraph.Ocean], 1)
}

func TestSmoothBezier_PreservesEndpoints(t *testing.T) {
	line := orb.LineString{{0, 0}, {1, 1}, {2, 0}, {3, 1}}
	smoothed := SmoothBezier(line, 100)
	require.True(t, len(smoothed) > len(line))
	assert.Equal(t, line[0], smoothed[0])
	assert.Equal(t, line[len(line)-1], smoothed[len(smoothed)-1])
}

func TestBufferLakeInward_ShrinksTowardCentroid(t *testing.T) {
	ring := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	shrunk := BufferLakeInward(ring, 2)
	centroid := ringCentroid(ring)
	for i := range ring {
		before := dist2(ring[i], centroid)
		after := dist2(shrunk[i], centroid)
		assert.Less(t, after, before)
	}
}

func dist2(a, b orb.Point) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}

func TestChain_StitchesSharedEndpoints(t *testing.T) {
	segs := []orb.LineString{
		{{0, 0}, {1, 0}},
		{{1, 0}, {2, 0}},
		{{5, 5}, {6, 5}},
	}
	chained := chain(segs)
	assert.Len(t, chained, 2)
}
