package voronoi

import (
	"math"
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_TileCountNearTarget(t *testing.T) {
	g, err := Build(Options{Rect: Rectangle{South: -10, West: -10, Height: 20, Width: 20}, TileCount: 100, Seed: 1})
	require.NoError(t, err)
	assert.InDelta(t, 100, g.Len(), 10)
}

func TestBuild_NeighborSymmetry(t *testing.T) {
	g, err := Build(Options{Rect: Rectangle{South: -20, West: -20, Height: 40, Width: 40}, TileCount: 150, Seed: 5})
	require.NoError(t, err)

	g.Range(func(tl *tilegraph.Tile) bool {
		for _, ne := range tl.Neighbors {
			if ne.Neighbor.Kind != tilegraph.NeighborTile {
				continue
			}
			other := g.Get(ne.Neighbor.TileID)
			require.NotNil(t, other)
			found := false
			for _, backEdge := range other.Neighbors {
				if backEdge.Neighbor.Kind == tilegraph.NeighborTile && backEdge.Neighbor.TileID == tl.ID {
					diff := math.Mod(backEdge.Bearing-math.Mod(ne.Bearing+180, 360)+360, 360)
					if diff > 180 {
						diff = 360 - diff
					}
					assert.LessOrEqual(t, diff, 5.0)
					found = true
					break
				}
			}
			assert.True(t, found, "missing back-edge")
		}
		return true
	})
}

func TestBuild_AntimeridianWrap(t *testing.T) {
	g, err := Build(Options{Rect: Rectangle{South: -90, West: -180, Height: 180, Width: 360}, TileCount: 200, Seed: 9})
	require.NoError(t, err)

	sawCrossMap := false
	g.Range(func(tl *tilegraph.Tile) bool {
		for _, ne := range tl.Neighbors {
			if ne.Neighbor.Kind == tilegraph.NeighborCrossMap {
				sawCrossMap = true
			}
		}
		return true
	})
	assert.True(t, sawCrossMap, "a world spanning 360 degrees of longitude must stitch east/west edges")
}

func TestRectangle_ValidateRejectsBadInputs(t *testing.T) {
	r := Rectangle{South: 100, West: 0, Height: 10, Width: 10}
	assert.Error(t, r.Validate())

	r2 := Rectangle{South: 0, West: 0, Height: 10, Width: 400}
	assert.Error(t, r2.Validate())
}
