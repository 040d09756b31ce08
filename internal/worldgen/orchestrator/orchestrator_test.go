package orchestrator

import (
	"context"
	"testing"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/culture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams() GenerationParams {
	p := DefaultGenerationParams()
	p.TileCount = 80
	p.Seed = 7
	return p
}

func TestCreate_BuildsGraphWithRequestedTileCount(t *testing.T) {
	p, err := Create(context.Background(), smallParams())
	require.NoError(t, err)
	assert.InDelta(t, 80, p.Graph.Len(), 15)
	assert.True(t, p.Completed[StageCreate])
}

func TestRunTerrain_RequiresRecipeOrDefault(t *testing.T) {
	p, err := Create(context.Background(), smallParams())
	require.NoError(t, err)

	err = p.RunTerrain(context.Background(), TerrainParams{})
	require.Error(t, err)
	assert.Equal(t, errs.Input, errs.KindOf(err))
}

func TestRunTerrain_RunsNamedRecipe(t *testing.T) {
	p, err := Create(context.Background(), smallParams())
	require.NoError(t, err)

	set := &recipe.RecipeSet{
		Recipes: []recipe.Recipe{{Name: "clear-only", Steps: []recipe.Step{{Command: "clear"}}}},
		Default: "clear-only",
	}
	err = p.RunTerrain(context.Background(), TerrainParams{RecipeSet: set})
	require.NoError(t, err)
	assert.True(t, p.Completed[StageTerrain])
}

func TestRunClimate_RequiresTerrainFirst(t *testing.T) {
	p, err := Create(context.Background(), smallParams())
	require.NoError(t, err)

	err = p.RunClimate(context.Background(), DefaultGenerationParams().Climate)
	require.Error(t, err)
	assert.Equal(t, errs.State, errs.KindOf(err))
}

func TestRunPeople_RequiresCultureDefinitions(t *testing.T) {
	p, err := Create(context.Background(), smallParams())
	require.NoError(t, err)
	p.Completed[StageTerrain] = true
	p.Completed[StageClimate] = true
	p.Completed[StageWater] = true
	p.Completed[StageBiome] = true

	err = p.RunPeople(context.Background(), CultureParams{})
	require.Error(t, err)
	assert.Equal(t, errs.Input, errs.KindOf(err))

	err = p.RunPeople(context.Background(), CultureParams{
		Definitions: []culture.Definition{{Name: "Solheim", Preference: &culture.Preference{Op: culture.OpHabitability}, Expansionism: 1}},
		Options:     culture.DefaultOptions(),
	})
	require.NoError(t, err)
}

func TestBigBang_FullPipelineProducesNations(t *testing.T) {
	params := smallParams()
	params.TileCount = 200
	params.Terrain = TerrainParams{
		RecipeSet: &recipe.RecipeSet{
			Recipes: []recipe.Recipe{{Name: "seed-and-flood", Steps: []recipe.Step{
				{Command: "random_uniform", Args: rawArgs(`{"height_delta":"-2000..=2000"}`)},
				{Command: "seed_ocean", Args: rawArgs(`{"count":"1..=1"}`)},
				{Command: "flood_ocean"},
			}}},
			Default: "seed-and-flood",
		},
	}
	params.Culture.Definitions = []culture.Definition{
		{Name: "Solheim", Preference: &culture.Preference{Op: culture.OpHabitability}, Expansionism: 1},
		{Name: "Nordmark", Preference: &culture.Preference{Op: culture.OpHabitability}, Expansionism: 1},
	}
	params.Settlement.CapitalCount = 2
	params.Settlement.TownCount = 6
	params.Settlement.ScoreThreshold = 0
	params.Settlement.CapitalSpacing = 1
	params.Settlement.TownSpacing = 0.5

	p, err := BigBang(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, p.Completed[StageSubs])
}

func rawArgs(s string) []byte { return []byte(s) }
