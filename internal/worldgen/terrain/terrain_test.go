package terrain

import (
	"encoding/json"
	"math/rand"
	"testing"

	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGrid constructs a regular cols x rows grid wired with 4-connected
// neighbours, used only to exercise terrain commands without needing a
// full Voronoi build.
func buildGrid(g *tilegraph.Graph, cols, rows int) {
	g.Rect = tilegraph.Rectangle{South: 0, West: 0, Height: float64(rows), Width: float64(cols)}
	ids := make([][]int, rows)
	for y := 0; y < rows; y++ {
		ids[y] = make([]int, cols)
		for x := 0; x < cols; x++ {
			t := g.CreateTile(&tilegraph.Tile{
				Site:     orb.Point{float64(x) + 0.5, float64(y) + 0.5},
				Grouping: tilegraph.Continent,
			})
			ids[y][x] = t.ID
		}
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			t := g.Get(ids[y][x])
			if x > 0 {
				t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(ids[y][x-1]), Bearing: 270})
			}
			if x < cols-1 {
				t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(ids[y][x+1]), Bearing: 90})
			}
			if y > 0 {
				t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(ids[y-1][x]), Bearing: 0})
			}
			if y < rows-1 {
				t.Neighbors = append(t.Neighbors, tilegraph.NeighborEdge{Neighbor: tilegraph.TileNeighbor(ids[y+1][x]), Bearing: 180})
			}
		}
	}
}

func TestEngine_Clear(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 3, 3)
	g.SetElevation(1, 500)
	e := NewEngine(g, rand.New(rand.NewSource(1)))
	require.NoError(t, e.clear())
	g.Range(func(tl *tilegraph.Tile) bool {
		assert.Equal(t, 0.0, tl.Elevation)
		assert.Equal(t, tilegraph.Continent, tl.Grouping)
		return true
	})
}

func TestEngine_AddHill_RaisesNearCenter(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 20, 20)
	e := NewEngine(g, rand.New(rand.NewSource(7)))
	args, _ := json.Marshal(map[string]string{
		"count":        "1..=1",
		"height_delta": "50..=50",
		"x_filter":     "0.45..=0.55",
		"y_filter":     "0.45..=0.55",
	})
	require.NoError(t, e.addHill(args))

	center := g.Get(10*20 + 10 + 1) // row 10, col 10 of the 20x20 grid
	corner := g.Get(1)
	assert.Greater(t, center.Elevation, 0.0)
	assert.Less(t, corner.Elevation, center.Elevation)
}

func TestEngine_FloodOcean_FixpointFromSeed(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 4, 1)
	for i := 1; i <= 4; i++ {
		g.SetElevation(i, -10)
	}
	g.Get(1).Grouping = tilegraph.Ocean

	e := NewEngine(g, rand.New(rand.NewSource(1)))
	require.NoError(t, e.floodOcean())

	g.Range(func(tl *tilegraph.Tile) bool {
		assert.Equal(t, tilegraph.Ocean, tl.Grouping)
		return true
	})
}

func TestEngine_FloodOcean_DoesNotCrossLand(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 4, 1)
	g.SetElevation(1, -10)
	g.SetElevation(2, 10) // land barrier
	g.SetElevation(3, -10)
	g.SetElevation(4, -10)
	g.Get(1).Grouping = tilegraph.Ocean

	e := NewEngine(g, rand.New(rand.NewSource(1)))
	require.NoError(t, e.floodOcean())

	assert.Equal(t, tilegraph.Ocean, g.Get(1).Grouping)
	assert.NotEqual(t, tilegraph.Ocean, g.Get(3).Grouping)
	assert.NotEqual(t, tilegraph.Ocean, g.Get(4).Grouping)
}

func TestEngine_Smooth_AveragesNeighbors(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 3, 1)
	g.SetElevation(1, 0)
	g.SetElevation(2, 90)
	g.SetElevation(3, 0)

	e := NewEngine(g, rand.New(rand.NewSource(1)))
	args, _ := json.Marshal(map[string]float64{"fr": 1})
	require.NoError(t, e.smooth(args))
	assert.InDelta(t, 30, g.Get(2).Elevation, 1e-9)
}

func TestExpand_RejectsCycle(t *testing.T) {
	set := &recipe.RecipeSet{Recipes: []recipe.Recipe{
		{Name: "a", Steps: []recipe.Step{{Command: "recipe", Args: json.RawMessage(`{"name":"b"}`)}}},
		{Name: "b", Steps: []recipe.Step{{Command: "recipe", Args: json.RawMessage(`{"name":"a"}`)}}},
	}}
	rng := rand.New(rand.NewSource(1))
	_, err := expand(set, set.Recipes[0].Steps, 0, map[string]bool{"a": true}, rng)
	assert.Error(t, err)
}

func TestExpand_FlattensNestedRecipe(t *testing.T) {
	set := &recipe.RecipeSet{Recipes: []recipe.Recipe{
		{Name: "outer", Steps: []recipe.Step{
			{Command: "clear"},
			{Command: "recipe", Args: json.RawMessage(`{"name":"inner"}`)},
		}},
		{Name: "inner", Steps: []recipe.Step{{Command: "flood_ocean"}}},
	}}
	rng := rand.New(rand.NewSource(1))
	steps, err := expand(set, set.Recipes[0].Steps, 0, map[string]bool{"outer": true}, rng)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "clear", steps[0].Command)
	assert.Equal(t, "flood_ocean", steps[1].Command)
}

func TestEngine_Run_FullRecipe(t *testing.T) {
	g := tilegraph.NewGraph()
	buildGrid(g, 10, 10)
	e := NewEngine(g, rand.New(rand.NewSource(42)))
	set := &recipe.RecipeSet{
		Default: "main",
		Recipes: []recipe.Recipe{
			{Name: "main", Steps: []recipe.Step{
				{Command: "clear"},
				{Command: "add_hill", Args: json.RawMessage(`{"count":"2..=2","height_delta":"40..=60","x_filter":"0..=1","y_filter":"0..=1"}`)},
				{Command: "flood_ocean"},
			}},
		},
	}
	require.NoError(t, e.Run(set, "main"))
}
