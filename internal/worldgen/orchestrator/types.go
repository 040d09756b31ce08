// Package orchestrator sequences the pipeline stages spec §2 and §6
// describe, enforcing each stage's prerequisites and carrying the
// per-run seed, logger, and metrics through every call (spec §5, §7).
package orchestrator

import (
	"cosmopoeia/internal/metrics"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/biome"
	"cosmopoeia/internal/worldgen/climate"
	"cosmopoeia/internal/worldgen/culture"
	"cosmopoeia/internal/worldgen/hydrology"
	"cosmopoeia/internal/worldgen/nation"
	"cosmopoeia/internal/worldgen/settlement"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/google/uuid"
)

// Stage names, used both as Completed keys and as the "stage" field in
// every log line and metric a stage emits.
const (
	StageCreate  = "create"
	StageTerrain = "terrain"
	StageClimate = "gen-climate"
	StageWater   = "gen-water"
	StageBiome   = "gen-biome"
	StagePeople  = "gen-people"
	StageTowns   = "gen-towns"
	StageNations = "gen-nations"
	StageSubs    = "gen-subnations"
	StageRegions = "regions"
)

// stageOrder is big-bang's sequencing and also the prerequisite chain:
// a stage requires every earlier stage in this list to be Completed.
var stageOrder = []string{
	StageCreate, StageTerrain, StageClimate, StageWater, StageBiome,
	StagePeople, StageTowns, StageNations, StageSubs, StageRegions,
}

// GenerationParams holds every tunable spec §6 lists a default for,
// generalized from the base service's GenerationParams shape (width,
// height, and one field group per stage).
type GenerationParams struct {
	Rect      tilegraph.Rectangle
	TileCount int
	Seed      int64

	Terrain    TerrainParams
	Climate    climate.Options
	Hydrology  hydrology.Options
	Biome      biome.Options
	Culture    CultureParams
	Settlement settlement.Options
	Nation     nation.Options
}

// TerrainParams names which recipe set/recipe to run during the
// terrain stage (spec §6's recipe/recipe-set JSON inputs).
type TerrainParams struct {
	RecipeSet *recipe.RecipeSet
	Recipe    string
}

// CultureParams feeds the People & Culture Engine its culture
// definitions, sourced from a culture-set document (spec §6).
type CultureParams struct {
	Definitions []culture.Definition
	Options     culture.Options
}

// DefaultGenerationParams mirrors spec §6's defaults.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Rect:       tilegraph.Rectangle{South: -90, West: -180, Height: 180, Width: 360},
		TileCount:  10000,
		Climate:    climate.DefaultOptions(),
		Hydrology:  hydrology.DefaultOptions(),
		Biome:      biome.DefaultOptions(),
		Culture:    CultureParams{Options: culture.DefaultOptions()},
		Settlement: settlement.DefaultOptions(),
		Nation:     nation.DefaultOptions(),
	}
}

// Pipeline runs stages against one Tile Graph Store, tracking which
// stages have completed so a later stage can refuse to run without its
// prerequisites (spec §7's State error kind).
type Pipeline struct {
	Graph     *tilegraph.Graph
	RunID     uuid.UUID
	Seed      int64
	Completed map[string]bool
	Metrics   *metrics.Metrics
}

// NewPipeline wraps an existing graph (e.g. loaded from the store) with
// a fresh completion tracker seeded from persisted properties.
func NewPipeline(g *tilegraph.Graph, runID uuid.UUID, seed int64, completed map[string]bool, m *metrics.Metrics) *Pipeline {
	if completed == nil {
		completed = map[string]bool{}
	}
	return &Pipeline{Graph: g, RunID: runID, Seed: seed, Completed: completed, Metrics: m}
}

// requirePrereqs returns a State error naming the first missing
// prerequisite stage, or nil if every stage before "stage" in
// stageOrder has completed.
func (p *Pipeline) requirePrereqs(stage string) error {
	for _, s := range stageOrder {
		if s == stage {
			return nil
		}
		if !p.Completed[s] {
			return stagePrereqError(stage, s)
		}
	}
	return nil
}
