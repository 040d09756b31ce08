package tilegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// wireLine connects tiles[i] <-> tiles[i+1] for every adjacent pair.
func wireLine(tiles []*Tile) {
	for i, t := range tiles {
		if i > 0 {
			t.Neighbors = append(t.Neighbors, NeighborEdge{Neighbor: TileNeighbor(tiles[i-1].ID)})
		}
		if i < len(tiles)-1 {
			t.Neighbors = append(t.Neighbors, NeighborEdge{Neighbor: TileNeighbor(tiles[i+1].ID)})
		}
	}
}

func TestLabelGroupings_SeparatesDisjointSameGroupingComponents(t *testing.T) {
	g := NewGraph()
	tiles := make([]*Tile, 5)
	for i := range tiles {
		tiles[i] = g.CreateTile(&Tile{Grouping: Continent})
	}
	tiles[2].Grouping = Ocean // splits the line into two continents
	wireLine(tiles)

	LabelGroupings(g)

	assert.Equal(t, tiles[0].GroupingID, tiles[1].GroupingID)
	assert.Equal(t, tiles[3].GroupingID, tiles[4].GroupingID)
	assert.NotEqual(t, tiles[0].GroupingID, tiles[3].GroupingID)
	assert.NotEqual(t, tiles[0].GroupingID, tiles[2].GroupingID)
}

func TestLabelGroupings_DeterministicAcrossRuns(t *testing.T) {
	build := func() *Graph {
		g := NewGraph()
		tiles := make([]*Tile, 6)
		for i := range tiles {
			grouping := Continent
			if i == 3 {
				grouping = Ocean
			}
			tiles[i] = g.CreateTile(&Tile{Grouping: grouping})
		}
		wireLine(tiles)
		return g
	}

	g1 := build()
	LabelGroupings(g1)
	g2 := build()
	LabelGroupings(g2)

	var ids1, ids2 []int
	g1.Range(func(t *Tile) bool { ids1 = append(ids1, t.GroupingID); return true })
	g2.Range(func(t *Tile) bool { ids2 = append(ids2, t.GroupingID); return true })
	assert.Equal(t, ids1, ids2)
}
