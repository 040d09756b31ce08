package expansion

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(n int) (*tilegraph.Graph, []*tilegraph.Tile) {
	g := tilegraph.NewGraph()
	tiles := make([]*tilegraph.Tile, n)
	for i := 0; i < n; i++ {
		tiles[i] = g.CreateTile(&tilegraph.Tile{Site: orb.Point{float64(i), 0}})
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			tiles[i].Neighbors = append(tiles[i].Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(tiles[i-1].ID)})
		}
		if i < n-1 {
			tiles[i].Neighbors = append(tiles[i].Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(tiles[i+1].ID)})
		}
	}
	return g, tiles
}

func TestRun_TwoSeedsSplitTheChain(t *testing.T) {
	g, tiles := chain(6)
	seeds := []Seed{{TileID: tiles[0].ID, Owner: 1}, {TileID: tiles[5].ID, Owner: 2}}
	uniformCost := func(from, to *tilegraph.Tile, owner int) float64 { return 1 }

	res := Run(g, seeds, uniformCost, 100)
	assert.Equal(t, 1, res.Owner[tiles[0].ID])
	assert.Equal(t, 1, res.Owner[tiles[1].ID])
	assert.Equal(t, 1, res.Owner[tiles[2].ID])
	assert.Equal(t, 2, res.Owner[tiles[3].ID])
	assert.Equal(t, 2, res.Owner[tiles[4].ID])
	assert.Equal(t, 2, res.Owner[tiles[5].ID])
}

func TestRun_RespectsMaxCost(t *testing.T) {
	g, tiles := chain(6)
	seeds := []Seed{{TileID: tiles[0].ID, Owner: 1}}
	uniformCost := func(from, to *tilegraph.Tile, owner int) float64 { return 1 }

	res := Run(g, seeds, uniformCost, 2)
	require.Contains(t, res.Owner, tiles[2].ID)
	assert.NotContains(t, res.Owner, tiles[3].ID)
}

func TestRun_CheaperPathWins(t *testing.T) {
	g, tiles := chain(4)
	seeds := []Seed{{TileID: tiles[0].ID, Owner: 1}, {TileID: tiles[3].ID, Owner: 2}}
	cost := func(from, to *tilegraph.Tile, owner int) float64 {
		if owner == 1 {
			return 0.5 // owner 1 expands cheaply
		}
		return 5
	}
	res := Run(g, seeds, cost, 100)
	assert.Equal(t, 1, res.Owner[tiles[2].ID]) // reached cheaply from owner 1 despite being closer to seed 2
}
