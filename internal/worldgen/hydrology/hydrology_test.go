package hydrology

import (
	"testing"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line builds a 1D chain of n tiles wired bidirectionally, descending
// in elevation from first to last unless overridden by the caller.
func line(n int) (*tilegraph.Graph, []*tilegraph.Tile) {
	g := tilegraph.NewGraph()
	tiles := make([]*tilegraph.Tile, n)
	for i := 0; i < n; i++ {
		tiles[i] = g.CreateTile(&tilegraph.Tile{Site: orb.Point{float64(i), 0}, Grouping: tilegraph.Continent})
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			tiles[i].Neighbors = append(tiles[i].Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(tiles[i-1].ID), Bearing: 270})
		}
		if i < n-1 {
			tiles[i].Neighbors = append(tiles[i].Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(tiles[i+1].ID), Bearing: 90})
		}
	}
	return g, tiles
}

func TestComputeShoreDistance_LandAndWaterSigns(t *testing.T) {
	g, tiles := line(4)
	tiles[0].Grouping = tilegraph.Ocean
	computeShoreDistance(g)
	assert.Equal(t, -1, tiles[0].ShoreDistance)
	assert.Equal(t, 0, tiles[1].ShoreDistance)
	assert.Equal(t, 1, tiles[2].ShoreDistance)
	assert.Equal(t, 2, tiles[3].ShoreDistance)
}

func TestComputeHarbor_OceanNeighborSetsHarborAndCount(t *testing.T) {
	g, tiles := line(4)
	tiles[0].Grouping = tilegraph.Ocean
	computeHarbor(g)

	require.NotNil(t, tiles[1].HarborTileID)
	assert.Equal(t, tiles[0].ID, *tiles[1].HarborTileID)
	require.NotNil(t, tiles[1].WaterCount)
	assert.Equal(t, 1, *tiles[1].WaterCount)

	assert.Nil(t, tiles[2].HarborTileID)
	require.NotNil(t, tiles[2].WaterCount)
	assert.Equal(t, 0, *tiles[2].WaterCount)
}

func TestComputeWaterFlow_RoutesDownhill(t *testing.T) {
	g, tiles := line(3)
	g.SetElevation(tiles[0].ID, 100)
	g.SetElevation(tiles[1].ID, 50)
	g.SetElevation(tiles[2].ID, 0)
	tiles[0].Precipitation = 20
	tiles[1].Precipitation = 10
	tiles[2].Precipitation = 5
	tiles[2].Grouping = tilegraph.Ocean

	sinks, inflow := computeWaterFlow(g)
	assert.Empty(t, sinks)
	require.Len(t, tiles[0].FlowTo, 1)
	assert.Equal(t, tiles[1].ID, tiles[0].FlowTo[0].TileID)
	assert.Equal(t, 1, inflow[tiles[1].ID])
	assert.InDelta(t, 30, tiles[1].WaterAccumulation, 1e-9) // 10 own + 20 inflow
}

func TestComputeWaterFlow_DetectsSink(t *testing.T) {
	g, tiles := line(3)
	g.SetElevation(tiles[0].ID, 10)
	g.SetElevation(tiles[1].ID, 0) // pit
	g.SetElevation(tiles[2].ID, 10)

	sinks, _ := computeWaterFlow(g)
	require.Len(t, sinks, 1)
	assert.Equal(t, tiles[1].ID, sinks[0].ID)
}

func TestFillSink_FindsLowestRimAsOutlet(t *testing.T) {
	g, tiles := line(5)
	// pit at tiles[2], rim tiles[1]=5 tiles[3]=8, bowl walls tiles[0]=20 tiles[4]=20
	g.SetElevation(tiles[0].ID, 20)
	g.SetElevation(tiles[1].ID, 5)
	g.SetElevation(tiles[2].ID, 0)
	g.SetElevation(tiles[3].ID, 8)
	g.SetElevation(tiles[4].ID, 20)

	pond, outlet, altOutlet, surface := fillSink(g, tiles[2])
	require.NotNil(t, outlet)
	assert.Equal(t, tiles[1].ID, outlet.ID)
	assert.Nil(t, altOutlet)
	assert.InDelta(t, 5, surface, 1e-9)
	assert.Contains(t, pondIDs(pond), tiles[2].ID)
}

func TestFillSink_TiedRimProducesAltOutlet(t *testing.T) {
	g, tiles := line(5)
	// pit at tiles[2], rim tiles[1] and tiles[3] tie at elevation 5.
	g.SetElevation(tiles[0].ID, 20)
	g.SetElevation(tiles[1].ID, 5)
	g.SetElevation(tiles[2].ID, 0)
	g.SetElevation(tiles[3].ID, 5)
	g.SetElevation(tiles[4].ID, 20)

	pond, outlet, altOutlet, surface := fillSink(g, tiles[2])
	require.NotNil(t, outlet)
	require.NotNil(t, altOutlet)
	assert.NotEqual(t, outlet.ID, altOutlet.ID)
	assert.InDelta(t, 5, surface, 1e-9)
	assert.Contains(t, pondIDs(pond), altOutlet.ID)
}

func pondIDs(pond []*tilegraph.Tile) []int {
	ids := make([]int, len(pond))
	for i, t := range pond {
		ids[i] = t.ID
	}
	return ids
}

func TestRun_FormsLakeAtSink(t *testing.T) {
	g, tiles := line(5)
	g.SetElevation(tiles[0].ID, 20)
	g.SetElevation(tiles[1].ID, 5)
	g.SetElevation(tiles[2].ID, 0)
	g.SetElevation(tiles[3].ID, 8)
	g.SetElevation(tiles[4].ID, 20)
	for _, t := range tiles {
		t.Precipitation = 50
	}

	Run(g, nil, DefaultOptions())
	require.Len(t, g.Lakes, 1)
	assert.NotNil(t, tiles[2].LakeID)
	assert.Equal(t, tilegraph.Lake, tiles[2].Grouping)
}

func TestRun_RiversReachOcean(t *testing.T) {
	g, tiles := line(4)
	g.SetElevation(tiles[0].ID, 30)
	g.SetElevation(tiles[1].ID, 20)
	g.SetElevation(tiles[2].ID, 10)
	g.SetElevation(tiles[3].ID, 0)
	tiles[3].Grouping = tilegraph.Ocean
	for _, t := range tiles {
		t.Precipitation = 100
	}

	Run(g, nil, Options{RiverThreshold: 1, Lakes: DefaultLakeThresholds()})
	require.NotEmpty(t, g.Rivers)
	last := g.Rivers[len(g.Rivers)-1]
	assert.Equal(t, tilegraph.RiverMouth, last.ToType)
}
