package main

import (
	"context"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/store"
	"cosmopoeia/internal/worldgen/orchestrator"
	"cosmopoeia/internal/worldgen/region"
)

var defaultBezierScale = region.DefaultOptions().BezierScale

// openPipeline loads an existing store's graph and run metadata into a
// Pipeline a stage subcommand can run against.
func openPipeline(ctx context.Context, target string) (*store.Store, *orchestrator.Pipeline, error) {
	s, err := store.Open(target)
	if err != nil {
		return nil, nil, err
	}
	g, runID, seed, completed, err := s.Load(ctx)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	if g.Len() == 0 {
		s.Close()
		return nil, nil, errs.New(errs.State, "store", target, "target has no tiles; run create first")
	}
	p := orchestrator.NewPipeline(g, runID, seed, completed, nil)
	return s, p, nil
}

// checkOverwrite refuses to rerun an already-completed stage unless the
// caller passed --overwrite or --overwrite-all (spec §7: "overwrite
// refused" is a State error).
func checkOverwrite(p *orchestrator.Pipeline, stage string, overwrite, overwriteAll bool) error {
	if !p.Completed[stage] {
		return nil
	}
	if overwrite || overwriteAll {
		p.Completed[stage] = false
		return nil
	}
	return errs.New(errs.State, stage, "overwrite", "stage already present in store; pass --overwrite or --overwrite-all to rerun")
}

// saveAndClose persists the pipeline's graph and run metadata, then
// closes the store regardless of the save outcome.
func saveAndClose(ctx context.Context, s *store.Store, p *orchestrator.Pipeline, bezierScale float64) error {
	defer s.Close()
	return s.Save(ctx, p.Graph, p.RunID, p.Seed, p.Completed, bezierScale)
}
