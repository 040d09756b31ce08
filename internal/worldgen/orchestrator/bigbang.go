package orchestrator

import (
	"context"

	"cosmopoeia/internal/errs"
)

// BigBang runs every stage in sequence against a freshly created store
// (spec §6's `big-bang` subcommand): the whole pipeline, one seed, one
// run. Each step checks ctx before starting, the same guard the base
// service's GenerateWorld uses between geography/weather/minerals/
// species stages, generalized here to terrain/climate/hydrology/
// biome/people/towns/nations/subnations.
func BigBang(ctx context.Context, params GenerationParams) (*Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := Create(ctx, params)
	if err != nil {
		return nil, err
	}

	steps := []struct {
		stage string
		run   func() error
	}{
		{StageTerrain, func() error { return p.RunTerrain(ctx, params.Terrain) }},
		{StageClimate, func() error { return p.RunClimate(ctx, params.Climate) }},
		{StageWater, func() error { return p.RunHydrology(ctx, params.Hydrology) }},
		{StageBiome, func() error { return p.RunBiome(ctx, params.Biome) }},
		{StagePeople, func() error { return p.RunPeople(ctx, params.Culture) }},
		{StageTowns, func() error { return p.RunTowns(ctx, params.Settlement) }},
		{StageNations, func() error { return p.RunNations(ctx, params.Nation) }},
		{StageSubs, func() error { return p.RunSubnations(ctx, params.Nation) }},
		{StageRegions, func() error { return p.RunRegions(ctx) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.run(); err != nil {
			return nil, errs.Wrap(errs.KindOf(err), "big-bang", step.stage, "stage failed", err)
		}
	}

	return p, nil
}
