package tilegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTile_DenseIDs(t *testing.T) {
	g := NewGraph()
	a := g.CreateTile(&Tile{})
	b := g.CreateTile(&Tile{})
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 2, g.Len())
}

func TestRange_IsIDOrder(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 10; i++ {
		g.CreateTile(&Tile{})
	}
	var seen []int
	g.Range(func(tl *Tile) bool {
		seen = append(seen, tl.ID)
		return true
	})
	for i, id := range seen {
		assert.Equal(t, i+1, id)
	}
}

func TestScaleElevation(t *testing.T) {
	assert.Equal(t, 20, ScaleElevation(0, 0, -11000, 9000))
	assert.Equal(t, 100, ScaleElevation(9000, 0, -11000, 9000))
	assert.Equal(t, 0, ScaleElevation(-11000, 0, -11000, 9000))
	// halfway to max positive -> halfway between 20 and 100
	assert.Equal(t, 60, ScaleElevation(4500, 0, -11000, 9000))
}

func TestSetElevation_RecomputesScaled(t *testing.T) {
	g := NewGraph()
	tl := g.CreateTile(&Tile{Elevation: 0})
	assert.Equal(t, 20, tl.ElevationScaled)
	g.SetElevation(tl.ID, 9000)
	assert.Equal(t, 100, g.Get(tl.ID).ElevationScaled)
}

func TestSnapshotRestore(t *testing.T) {
	g := NewGraph()
	tl := g.CreateTile(&Tile{Elevation: 10, Grouping: Continent})
	snap := g.Snapshot()
	g.SetElevation(tl.ID, 500)
	tl.Grouping = Ocean
	g.Restore(snap)
	assert.Equal(t, 10.0, g.Get(tl.ID).Elevation)
	assert.Equal(t, Continent, g.Get(tl.ID).Grouping)
}

func TestNeighborTiles_SkipsOffMap(t *testing.T) {
	g := NewGraph()
	a := g.CreateTile(&Tile{})
	b := g.CreateTile(&Tile{})
	a.Neighbors = []NeighborEdge{
		{Neighbor: TileNeighbor(b.ID), Bearing: 90},
		{Neighbor: OffMapNeighbor(EdgeN), Bearing: 0},
	}
	neighbors := g.NeighborTiles(a)
	assert.Len(t, neighbors, 1)
	assert.Equal(t, b.ID, neighbors[0].ID)
}
