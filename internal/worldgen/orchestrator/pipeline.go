package orchestrator

import (
	"context"
	"sort"
	"time"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/logging"
	"cosmopoeia/internal/rng"
	"cosmopoeia/internal/worldgen/biome"
	"cosmopoeia/internal/worldgen/climate"
	"cosmopoeia/internal/worldgen/culture"
	"cosmopoeia/internal/worldgen/hydrology"
	"cosmopoeia/internal/worldgen/nation"
	"cosmopoeia/internal/worldgen/settlement"
	"cosmopoeia/internal/worldgen/terrain"
	"cosmopoeia/internal/worldgen/tilegraph"
	"cosmopoeia/internal/worldgen/voronoi"
)

func stagePrereqError(stage, missing string) error {
	return errs.New(errs.State, stage, missing, "prerequisite stage has not run")
}

// Create builds a fresh Tile Graph Store from scratch (spec §6's
// `create blank`).
func Create(ctx context.Context, params GenerationParams) (*Pipeline, error) {
	ctx, runID := logging.NewRun(ctx, params.Seed)
	_, logger := logging.Stage(ctx, StageCreate)

	g, err := voronoi.Build(voronoi.Options{Rect: params.Rect, TileCount: params.TileCount, Seed: params.Seed})
	if err != nil {
		return nil, errs.Wrap(errs.KindOf(err), StageCreate, "voronoi", "failed to build tile graph", err)
	}
	logger.Info().Int("tiles", g.Len()).Msg("created")

	p := NewPipeline(g, runID, params.Seed, map[string]bool{StageCreate: true}, nil)
	return p, nil
}

// RunTerrain executes one recipe (or the default recipe in a recipe
// set) against the store (spec §4.3, §6's `terrain` subcommand).
func (p *Pipeline) RunTerrain(ctx context.Context, params TerrainParams) error {
	if err := p.requirePrereqs(StageTerrain); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageTerrain)

	r := rng.Child(p.Seed, "terrain")
	engine := terrain.NewEngine(p.Graph, r)

	name := params.Recipe
	if name == "" && params.RecipeSet != nil {
		name = params.RecipeSet.Default
	}
	if params.RecipeSet == nil || name == "" {
		return errs.New(errs.Input, StageTerrain, "recipe", "no recipe set or default recipe given")
	}
	if err := engine.Run(params.RecipeSet, name); err != nil {
		p.observeError(StageTerrain, err)
		return err
	}

	p.Completed[StageTerrain] = true
	p.observeDuration(StageTerrain, start)
	logger.Info().Str("recipe", name).Msg("terrain complete")
	return nil
}

// RunClimate executes the Climate Engine (spec §4.4, §6's `gen-climate`).
func (p *Pipeline) RunClimate(ctx context.Context, opts climate.Options) error {
	if err := p.requirePrereqs(StageClimate); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageClimate)

	climate.Run(p.Graph, opts)

	p.Completed[StageClimate] = true
	p.observeDuration(StageClimate, start)
	logger.Info().Msg("climate complete")
	return nil
}

// RunHydrology executes the Hydrology Engine (spec §4.5, §6's `gen-water`).
func (p *Pipeline) RunHydrology(ctx context.Context, opts hydrology.Options) error {
	if err := p.requirePrereqs(StageWater); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageWater)

	hydrology.Run(p.Graph, logger, opts)

	p.Completed[StageWater] = true
	p.observeDuration(StageWater, start)
	logger.Info().Int("rivers", len(p.Graph.Rivers)).Int("lakes", len(p.Graph.Lakes)).Msg("hydrology complete")
	return nil
}

// RunBiome executes the Biome Classifier (spec §4.6, §6's `gen-biome`).
func (p *Pipeline) RunBiome(ctx context.Context, opts biome.Options) error {
	if err := p.requirePrereqs(StageBiome); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageBiome)

	if err := biome.Run(p.Graph, opts); err != nil {
		p.observeError(StageBiome, err)
		return err
	}

	p.Completed[StageBiome] = true
	p.observeDuration(StageBiome, start)
	logger.Info().Msg("biome complete")
	return nil
}

// RunPeople executes the People & Culture Engine (spec §4.7, §6's
// `gen-people`): habitability, then culture seeding + expansion.
func (p *Pipeline) RunPeople(ctx context.Context, params CultureParams) error {
	if err := p.requirePrereqs(StagePeople); err != nil {
		return err
	}
	if len(params.Definitions) == 0 {
		return errs.New(errs.Input, StagePeople, "cultures", "no culture definitions given")
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StagePeople)

	culture.ComputeHabitability(p.Graph)
	culture.Seed(p.Graph, params.Definitions, params.Options, p.Seed)

	p.Completed[StagePeople] = true
	p.observeDuration(StagePeople, start)
	logger.Info().Int("cultures", len(p.Graph.Cultures)).Msg("people complete")
	return nil
}

// RunTowns executes the Settlements Engine (spec §4.8, §6's `gen-towns`).
func (p *Pipeline) RunTowns(ctx context.Context, opts settlement.Options) error {
	if err := p.requirePrereqs(StageTowns); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageTowns)

	settlement.Run(p.Graph, opts)

	p.Completed[StageTowns] = true
	p.observeDuration(StageTowns, start)
	logger.Info().Int("towns", len(p.Graph.Towns)).Msg("towns complete")
	return nil
}

// RunNations executes the Nations Engine (spec §4.9, §6's `gen-nations`),
// seeding one nation per capital town.
func (p *Pipeline) RunNations(ctx context.Context, opts nation.Options) error {
	if err := p.requirePrereqs(StageNations); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageNations)

	caps := p.capitalSeeds()
	if len(caps) == 0 {
		return errs.New(errs.State, StageNations, "towns", "no capital towns to expand nations from")
	}
	for i, c := range caps {
		nationID := i + 1
		p.Graph.Nations = append(p.Graph.Nations, &tilegraph.Nation{
			ID: nationID, CultureID: c.CultureID, CenterTileID: c.TileID,
			Expansionism: c.Expansionism, CapitalTownID: c.TownID,
		})
		caps[i].NationID = nationID
	}
	nation.ExpandNations(p.Graph, toCapitalSeeds(caps), opts, p.Seed)

	p.Completed[StageNations] = true
	p.observeDuration(StageNations, start)
	logger.Info().Int("nations", len(p.Graph.Nations)).Msg("nations complete")
	return nil
}

// RunSubnations executes the Subnations Engine (spec §4.9, §6's
// `gen-subnations`), seeding one subnation per non-capital town within
// each nation (spec §6's subnation_percentage picks how many).
func (p *Pipeline) RunSubnations(ctx context.Context, opts nation.Options) error {
	if err := p.requirePrereqs(StageSubs); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageSubs)

	seeds := p.subnationSeeds(opts.SubnationPercentage)
	if len(seeds) == 0 {
		return errs.New(errs.State, StageSubs, "nations", "no eligible towns to seed subnations from")
	}
	for i, s := range seeds {
		subID := i + 1
		seeds[i].SubnationID = subID
		p.Graph.Subnations = append(p.Graph.Subnations, &tilegraph.Subnation{
			ID: subID, CultureID: s.CultureID, CenterTileID: s.TileID, NationID: s.NationID,
		})
	}
	nation.ExpandSubnations(p.Graph, seeds, opts, p.Seed)

	p.Completed[StageSubs] = true
	p.observeDuration(StageSubs, start)
	logger.Info().Int("subnations", len(p.Graph.Subnations)).Msg("subnations complete")
	return nil
}

// RunRegions assembles the vector regions the Persistent Store's Save
// writes out (biomes, coastlines, oceans, culture/nation/subnation/lake
// territories, smoothed rivers), marking the last prerequisite stage
// before a store Save is allowed (spec §4.10, §6's `regions` stage).
// The assembly itself happens inside Save, driven directly off the Tile
// Graph Store's tile attributes, so this stage is a prerequisite gate
// and a place to log/measure it rather than a second assembly pass.
func (p *Pipeline) RunRegions(ctx context.Context) error {
	if err := p.requirePrereqs(StageRegions); err != nil {
		return err
	}
	start := time.Now()
	_, logger := logging.Stage(ctx, StageRegions)

	p.Completed[StageRegions] = true
	p.observeDuration(StageRegions, start)
	logger.Info().Msg("regions complete")
	return nil
}

func (p *Pipeline) capitalSeeds() []capitalTown {
	var out []capitalTown
	for _, t := range p.Graph.Towns {
		if !t.IsCapital || t.CultureID == nil {
			continue
		}
		out = append(out, capitalTown{TileID: t.TileID, TownID: t.ID, CultureID: *t.CultureID, Expansionism: 1})
	}
	return out
}

type capitalTown struct {
	TileID       int
	TownID       int
	CultureID    int
	NationID     int
	Expansionism float64
}

func toCapitalSeeds(caps []capitalTown) []nation.CapitalSeed {
	out := make([]nation.CapitalSeed, len(caps))
	for i, c := range caps {
		out[i] = nation.CapitalSeed{NationID: c.NationID, TileID: c.TileID, CultureID: c.CultureID, Expansionism: c.Expansionism}
	}
	return out
}

func (p *Pipeline) subnationSeeds(percentage float64) []nation.SubnationSeed {
	if percentage <= 0 {
		percentage = 20
	}
	byNation := map[int][]*tilegraph.Town{}
	for _, t := range p.Graph.Towns {
		tile := p.Graph.Get(t.TileID)
		if tile == nil || tile.NationID == nil || t.IsCapital {
			continue
		}
		byNation[*tile.NationID] = append(byNation[*tile.NationID], t)
	}
	nationIDs := make([]int, 0, len(byNation))
	for nationID := range byNation {
		nationIDs = append(nationIDs, nationID)
	}
	sort.Ints(nationIDs)

	var out []nation.SubnationSeed
	for _, nationID := range nationIDs {
		towns := byNation[nationID]
		want := int(float64(len(towns))*percentage/100) + 1
		for i := 0; i < want && i < len(towns); i++ {
			t := towns[i]
			cultureID := 0
			if t.CultureID != nil {
				cultureID = *t.CultureID
			}
			out = append(out, nation.SubnationSeed{NationID: nationID, TileID: t.TileID, CultureID: cultureID})
		}
	}
	return out
}

func (p *Pipeline) observeDuration(stage string, start time.Time) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (p *Pipeline) observeError(stage string, err error) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.StageErrors.WithLabelValues(stage, string(errs.KindOf(err))).Inc()
}
