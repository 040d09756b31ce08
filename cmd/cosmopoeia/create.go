package main

import (
	"context"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/logging"
	"cosmopoeia/internal/raster"
	"cosmopoeia/internal/store"
	"cosmopoeia/internal/worldgen/orchestrator"
	"cosmopoeia/internal/worldgen/tilegraph"
	"cosmopoeia/internal/worldgen/voronoi"

	"github.com/spf13/cobra"
)

// rectFlags binds the south/west/height/width quartet spec §4.2 takes
// for the world bounding rectangle, shared by `create blank` and
// `create from-heightmap`.
type rectFlags struct {
	south, west, height, width float64
	tileCount                  int
}

func (r rectFlags) rect() tilegraph.Rectangle {
	return tilegraph.Rectangle{South: r.south, West: r.west, Height: r.height, Width: r.width}
}

func bindRectFlags(cmd *cobra.Command, r *rectFlags) {
	cmd.Flags().Float64Var(&r.south, "south", -90, "southern edge of the world rectangle, degrees")
	cmd.Flags().Float64Var(&r.west, "west", -180, "western edge of the world rectangle, degrees")
	cmd.Flags().Float64Var(&r.height, "height", 180, "world rectangle height, degrees")
	cmd.Flags().Float64Var(&r.width, "width", 360, "world rectangle width, degrees")
	cmd.Flags().IntVar(&r.tileCount, "tile-count", 10000, "approximate number of tiles to generate")
}

func newCreateCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "build a fresh tile graph store",
	}
	cmd.AddCommand(newCreateBlankCommand(flags), newCreateFromHeightmapCommand(flags))
	return cmd
}

func newCreateBlankCommand(flags *globalFlags) *cobra.Command {
	var r rectFlags
	cmd := &cobra.Command{
		Use:   "blank <target>",
		Short: "create a tile graph with elevation 0 everywhere (spec §6's `create blank`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			p, err := orchestrator.Create(ctx, orchestrator.GenerationParams{
				Rect: r.rect(), TileCount: r.tileCount, Seed: flags.seed,
			})
			if err != nil {
				return err
			}

			s, err := store.Open(target)
			if err != nil {
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	bindRectFlags(cmd, &r)
	return cmd
}

func newCreateFromHeightmapCommand(flags *globalFlags) *cobra.Command {
	var r rectFlags
	var rasterPath string
	var nodata float64
	var hasNodata bool

	cmd := &cobra.Command{
		Use:   "from-heightmap <target>",
		Short: "create a tile graph whose extent matches an existing raster heightmap (spec §6's `create from-heightmap`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			if rasterPath == "" {
				return errs.New(errs.Input, "create", "raster", "--raster is required for from-heightmap")
			}
			src, err := raster.LoadGeoTIFF(rasterPath, raster.Bounds{
				West: r.west, South: r.south, East: r.west + r.width, North: r.south + r.height,
			}, nodata, hasNodata)
			if err != nil {
				return err
			}

			g, err := voronoi.Build(voronoi.Options{Rect: r.rect(), TileCount: r.tileCount, Seed: flags.seed})
			if err != nil {
				return err
			}
			sampleElevationFromRaster(g, src)

			_, runID := logging.NewRun(ctx, flags.seed)
			p := orchestrator.NewPipeline(g, runID, flags.seed, map[string]bool{orchestrator.StageCreate: true}, nil)

			s, err := store.Open(target)
			if err != nil {
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	bindRectFlags(cmd, &r)
	cmd.Flags().StringVar(&rasterPath, "raster", "", "GeoTIFF heightmap to match extent and sample elevation from")
	cmd.Flags().Float64Var(&nodata, "nodata", 0, "raster nodata value")
	cmd.Flags().BoolVar(&hasNodata, "has-nodata", false, "whether --nodata should be treated as a real nodata marker")
	return cmd
}

// sampleElevationFromRaster mirrors the terrain engine's
// SampleElevation command (spec §4.3) for the one-shot heightmap
// variant of `create`, which runs before any recipe.
func sampleElevationFromRaster(g *tilegraph.Graph, src raster.Raster) {
	g.Range(func(t *tilegraph.Tile) bool {
		v, nodataHit := src.Sample(t.Site[0], t.Site[1])
		if !nodataHit {
			g.SetElevation(t.ID, v)
		}
		return true
	})
}
