package culture

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreference_HabitabilityLeaf(t *testing.T) {
	p := &Preference{Op: OpHabitability}
	tl := &tilegraph.Tile{Habitability: 0.5}
	assert.Equal(t, 0.5, p.Eval(tl, 1))
}

func TestPreference_AddMultiply(t *testing.T) {
	p := &Preference{Op: OpMultiply, Children: []*Preference{
		{Op: OpHabitability},
		{Op: OpAdd, Children: []*Preference{
			{Op: OpShoreDistance},
			{Op: OpOceanCoast, Weight: 2},
		}},
	}}
	tl := &tilegraph.Tile{Habitability: 2, ShoreDistance: 0}
	assert.Equal(t, 2*(0+2.0), p.Eval(tl, 1))
}

func TestPreference_DivideByZeroIsZero(t *testing.T) {
	p := &Preference{Op: OpDivide, Children: []*Preference{
		{Op: OpHabitability},
		{Op: OpElevation},
	}}
	tl := &tilegraph.Tile{Habitability: 5, ElevationScaled: 0}
	assert.Equal(t, 0.0, p.Eval(tl, 1))
}

func TestComputeHabitability_ZeroOnOcean(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Grouping: tilegraph.Ocean, Biome: "Ocean"})
	ComputeHabitability(g)
	assert.Equal(t, 0.0, tl.Habitability)
	assert.Equal(t, 0.0, tl.Population)
}

func TestComputeHabitability_PositiveOnLand(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Grouping: tilegraph.Continent, Biome: "Grassland", Temperature: 18})
	ComputeHabitability(g)
	assert.Greater(t, tl.Habitability, 0.0)
}

func TestSeed_PlacesWithMinimumSpacing(t *testing.T) {
	g := tilegraph.NewGraph()
	for i := 0; i < 10; i++ {
		g.CreateTile(&tilegraph.Tile{Site: orb.Point{float64(i), 0}, Grouping: tilegraph.Continent, Biome: "Grassland", Temperature: 18})
	}
	ComputeHabitability(g)

	defs := []Definition{
		{Name: "A", Preference: &Preference{Op: OpHabitability}, Expansionism: 1},
		{Name: "B", Preference: &Preference{Op: OpHabitability}, Expansionism: 1},
	}
	opts := DefaultOptions()
	opts.MinSpacing = 2
	Seed(g, defs, opts, 42)

	require.Len(t, g.Cultures, 2)
	assert.NotEqual(t, g.Cultures[0].CenterTileID, g.Cultures[1].CenterTileID)
}

func buildExpansionGrid() (*tilegraph.Graph, []Definition) {
	g := tilegraph.NewGraph()
	for i := 0; i < 10; i++ {
		g.CreateTile(&tilegraph.Tile{Site: orb.Point{float64(i), 0}, Grouping: tilegraph.Continent, Biome: "Grassland", Temperature: 18})
	}
	g.Range(func(t *tilegraph.Tile) bool {
		if n := g.Get(t.ID - 1); n != nil {
			t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(n.ID)})
		}
		if n := g.Get(t.ID + 1); n != nil {
			t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(n.ID)})
		}
		return true
	})
	ComputeHabitability(g)
	defs := []Definition{
		{Name: "A", Preference: &Preference{Op: OpHabitability}, Expansionism: 1},
		{Name: "B", Preference: &Preference{Op: OpHabitability}, Expansionism: 1},
	}
	return g, defs
}

func cultureOwners(g *tilegraph.Graph) []int {
	var out []int
	g.Range(func(t *tilegraph.Tile) bool {
		if t.CultureID != nil {
			out = append(out, *t.CultureID)
		} else {
			out = append(out, 0)
		}
		return true
	})
	return out
}

func TestSeed_SizeVarianceReproducibleForFixedSeed(t *testing.T) {
	g1, defs1 := buildExpansionGrid()
	opts := DefaultOptions()
	opts.MinSpacing = 2
	opts.SizeVariance = 7
	Seed(g1, defs1, opts, 99)

	g2, defs2 := buildExpansionGrid()
	Seed(g2, defs2, opts, 99)

	assert.Equal(t, cultureOwners(g1), cultureOwners(g2))
}
