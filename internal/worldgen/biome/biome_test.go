package biome

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MatrixComplete(t *testing.T) {
	require.NoError(t, Validate())
}

func TestClassify_OceanOverride(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Grouping: tilegraph.Ocean, Temperature: 25, Precipitation: 50})
	require.NoError(t, Run(g, DefaultOptions()))
	assert.Equal(t, Ocean, tl.Biome)
}

func TestClassify_GlacierOverride(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 80}, Grouping: tilegraph.Continent, Temperature: -20, Precipitation: 50})
	require.NoError(t, Run(g, DefaultOptions()))
	assert.Equal(t, Glacier, tl.Biome)
}

func TestClassify_WetlandOverride(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Grouping: tilegraph.Continent, Temperature: 15, Precipitation: 50, WaterFlow: 400})
	tl.ElevationScaled = 30
	require.NoError(t, Run(g, DefaultOptions()))
	assert.Equal(t, Wetland, tl.Biome)
}

func TestClassify_MatrixLookup(t *testing.T) {
	g := tilegraph.NewGraph()
	tl := g.CreateTile(&tilegraph.Tile{Site: orb.Point{0, 0}, Grouping: tilegraph.Continent, Temperature: 25, Precipitation: 5})
	require.NoError(t, Run(g, DefaultOptions()))
	assert.Equal(t, "Desert", tl.Biome)
}
