package nation

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineTiles(n int) (*tilegraph.Graph, []*tilegraph.Tile) {
	g := tilegraph.NewGraph()
	tiles := make([]*tilegraph.Tile, n)
	for i := 0; i < n; i++ {
		tiles[i] = g.CreateTile(&tilegraph.Tile{Site: orb.Point{float64(i), 0}, Grouping: tilegraph.Continent, Habitability: 0.5})
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

func TestExpandNations_MoreNeutralTilesWithLowerExpansionFactor(t *testing.T) {
	g, tiles := lineTiles(10)
	caps := []CapitalSeed{{NationID: 1, TileID: tiles[0].ID, CultureID: 1, Expansionism: 1}}

	lowFactor := DefaultOptions()
	lowFactor.ExpansionFactor = 0.1
	ExpandNations(g, caps, lowFactor, 1)
	lowOwned := countOwned(tiles)

	g2, tiles2 := lineTiles(10)
	caps2 := []CapitalSeed{{NationID: 1, TileID: tiles2[0].ID, CultureID: 1, Expansionism: 1}}
	highFactor := DefaultOptions()
	highFactor.ExpansionFactor = 2.0
	ExpandNations(g2, caps2, highFactor, 1)
	highOwned := countOwned(tiles2)

	assert.GreaterOrEqual(t, lowOwned, highOwned)
}

func countOwned(tiles []*tilegraph.Tile) int {
	n := 0
	for _, t := range tiles {
		if t.NationID != nil {
			n++
		}
	}
	return n
}

func TestExpandSubnations_BoundedToNation(t *testing.T) {
	g, tiles := lineTiles(6)
	caps := []CapitalSeed{{NationID: 1, TileID: tiles[0].ID, CultureID: 1, Expansionism: 1}}
	opts := DefaultOptions()
	opts.NeutralLandCost = 1000
	ExpandNations(g, caps, opts, 1)

	subSeeds := []SubnationSeed{{NationID: 1, SubnationID: 10, TileID: tiles[0].ID, CultureID: 1}}
	ExpandSubnations(g, subSeeds, opts, 1)

	for _, tile := range tiles {
		if tile.SubnationID != nil {
			require.NotNil(t, tile.NationID)
		}
	}
}
