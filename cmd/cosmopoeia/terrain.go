package main

import (
	"encoding/json"
	"os"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/raster"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/rng"
	"cosmopoeia/internal/worldgen/orchestrator"
	"cosmopoeia/internal/worldgen/terrain"

	"github.com/spf13/cobra"
)

// newTerrainCommand builds the `terrain` subcommand tree (spec §6):
// one leaf per command spec §4.3's table names, plus `recipe-set` for
// running a named recipe out of a JSON document.
func newTerrainCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terrain",
		Short: "run one terrain-shaping command, or a recipe, against an existing store",
	}
	cmd.AddCommand(
		newTerrainStepCommand(flags, "clear", []string{"clear"}, "reset elevation to 0 and grouping to Continent"),
		newTerrainStepCommand(flags, "clear-ocean", []string{"clear_ocean", "fill-ocean", "fill_ocean"}, "tag every tile at or below sea level as Ocean"),
		newTerrainFilterCommand(flags),
		newTerrainBumpCommand(flags, "add-hill", "add_hill"),
		newTerrainBumpCommand(flags, "add-range", "add_range"),
		newTerrainStraitCommand(flags),
		newTerrainMaskCommand(flags),
		newTerrainInvertCommand(flags),
		newTerrainAddCommand(flags),
		newTerrainMultiplyCommand(flags),
		newTerrainSmoothCommand(flags),
		newTerrainErodeCommand(flags),
		newTerrainSeedOceanCommand(flags),
		newTerrainStepCommand(flags, "flood-ocean", []string{"flood_ocean"}, "BFS-flood Ocean tagging to every connected below-sea-level tile"),
		newTerrainSampleCommand(flags, "sample-ocean-masked", "sample_ocean_masked", true),
		newTerrainSampleCommand(flags, "sample-ocean-below", "sample_ocean_below", true),
		newTerrainSampleCommand(flags, "sample-elevation", "sample_elevation", false),
		newTerrainRecipeSetCommand(flags),
	)
	return cmd
}

// runTerrainStep opens the store, runs one ad-hoc single-step recipe
// through the terrain engine (spec §4.3), and saves.
func runTerrainStep(cmd *cobra.Command, flags *globalFlags, target string, step recipe.Step, sources map[string]raster.Raster) error {
	ctx := cmd.Context()
	s, p, err := openPipeline(ctx, target)
	if err != nil {
		return err
	}
	if err := checkOverwrite(p, orchestrator.StageTerrain, false, flags.overwriteAll); err != nil {
		s.Close()
		return err
	}

	r := rng.Child(p.Seed, "terrain")
	engine := terrain.NewEngine(p.Graph, r)
	for name, src := range sources {
		engine.Sources[name] = src
	}

	set := &recipe.RecipeSet{Recipes: []recipe.Recipe{{Name: "adhoc", Steps: []recipe.Step{step}}}, Default: "adhoc"}
	if err := engine.Run(set, "adhoc"); err != nil {
		s.Close()
		return err
	}
	p.Completed[orchestrator.StageTerrain] = true
	return saveAndClose(ctx, s, p, defaultBezierScale)
}

func marshalArgs(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err) // only ever marshals our own static structs
	}
	return b
}

// newTerrainStepCommand builds a leaf command for a no-argument
// terrain command (clear, flood-ocean, ...).
func newTerrainStepCommand(flags *globalFlags, use string, aliases []string, short string) *cobra.Command {
	command := cobraCommandName(use)
	cmd := &cobra.Command{
		Use:     use + " <target>",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: command}, nil)
		},
	}
	return cmd
}

// cobraCommandName maps a dash-separated CLI leaf name to the
// underscore-separated command name the terrain engine dispatches on.
func cobraCommandName(use string) string {
	out := make([]rune, 0, len(use))
	for _, r := range use {
		if r == '-' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func newTerrainFilterCommand(flags *globalFlags) *cobra.Command {
	var heightDelta, heightFilter string
	cmd := &cobra.Command{
		Use:   "random-uniform <target>",
		Short: "add a uniformly sampled delta to every tile within an optional elevation filter (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type argsT struct {
				HeightDelta string  `json:"height_delta"`
				HeightRange *string `json:"height_filter,omitempty"`
			}
			a := argsT{HeightDelta: heightDelta}
			if heightFilter != "" {
				a.HeightRange = &heightFilter
			}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "random_uniform", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&heightDelta, "height-delta", "-10..=10", "range to sample the added delta from")
	cmd.Flags().StringVar(&heightFilter, "height-filter", "", "only affect tiles whose current elevation is in this range")
	return cmd
}

func newTerrainBumpCommand(flags *globalFlags, use, command string) *cobra.Command {
	var count, heightDelta, xFilter, yFilter string
	cmd := &cobra.Command{
		Use:   use + " <target>",
		Short: "spawn " + use + "s by Gaussian bump / linear ridge (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type argsT struct {
				Count       string `json:"count"`
				HeightDelta string `json:"height_delta"`
				XFilter     string `json:"x_filter"`
				YFilter     string `json:"y_filter"`
			}
			a := argsT{Count: count, HeightDelta: heightDelta, XFilter: xFilter, YFilter: yFilter}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: command, Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&count, "count", "1..=1", "how many to spawn")
	cmd.Flags().StringVar(&heightDelta, "height-delta", "10..=30", "peak height range")
	cmd.Flags().StringVar(&xFilter, "x-filter", "0..=1", "normalized x range to place within")
	cmd.Flags().StringVar(&yFilter, "y-filter", "0..=1", "normalized y range to place within")
	return cmd
}

func newTerrainStraitCommand(flags *globalFlags) *cobra.Command {
	var width, direction string
	cmd := &cobra.Command{
		Use:   "add-strait <target>",
		Short: "cut a depressed band across the world (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type argsT struct {
				Width     string `json:"width"`
				Direction string `json:"direction"`
			}
			a := argsT{Width: width, Direction: direction}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "add_strait", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&width, "width", "2..=5", "strait width range, degrees")
	cmd.Flags().StringVar(&direction, "direction", "horizontal", "horizontal or vertical")
	return cmd
}

func newTerrainMaskCommand(flags *globalFlags) *cobra.Command {
	var power float64
	cmd := &cobra.Command{
		Use:   "mask <target>",
		Short: "scale elevation by (distance-to-edge/max-distance)^power (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := struct {
				Power float64 `json:"power"`
			}{Power: power}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "mask", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().Float64Var(&power, "power", 1, "mask exponent (spec §6 default 1)")
	return cmd
}

func newTerrainInvertCommand(flags *globalFlags) *cobra.Command {
	var probability float64
	var axes string
	cmd := &cobra.Command{
		Use:   "invert <target>",
		Short: "mirror elevations across x, y, or both with probability p (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := struct {
				Probability float64 `json:"probability"`
				Axes        string  `json:"axes"`
			}{Probability: probability, Axes: axes}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "invert", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().Float64Var(&probability, "probability", 1, "probability of inverting")
	cmd.Flags().StringVar(&axes, "axes", "both", "x, y, or both")
	return cmd
}

func newTerrainAddCommand(flags *globalFlags) *cobra.Command {
	var heightDelta, heightFilter string
	cmd := &cobra.Command{
		Use:   "add <target>",
		Short: "pointwise affine add (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type argsT struct {
				HeightDelta string  `json:"height_delta"`
				HeightRange *string `json:"height_filter,omitempty"`
			}
			a := argsT{HeightDelta: heightDelta}
			if heightFilter != "" {
				a.HeightRange = &heightFilter
			}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "add", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&heightDelta, "height-delta", "0", "amount to add")
	cmd.Flags().StringVar(&heightFilter, "height-filter", "", "only affect tiles whose current elevation is in this range")
	return cmd
}

func newTerrainMultiplyCommand(flags *globalFlags) *cobra.Command {
	var heightFactor, heightFilter string
	cmd := &cobra.Command{
		Use:   "multiply <target>",
		Short: "pointwise affine multiply (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type argsT struct {
				HeightFactor string  `json:"height_factor"`
				HeightRange  *string `json:"height_filter,omitempty"`
			}
			a := argsT{HeightFactor: heightFactor}
			if heightFilter != "" {
				a.HeightRange = &heightFilter
			}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "multiply", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&heightFactor, "height-factor", "1", "multiplier")
	cmd.Flags().StringVar(&heightFilter, "height-filter", "", "only affect tiles whose current elevation is in this range")
	return cmd
}

func newTerrainSmoothCommand(flags *globalFlags) *cobra.Command {
	var fr float64
	cmd := &cobra.Command{
		Use:   "smooth <target>",
		Short: "replace elevation with the weighted mean of neighbours (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := struct {
				Fr float64 `json:"fr"`
			}{Fr: fr}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "smooth", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().Float64Var(&fr, "fr", 2, "weight on the tile itself vs 1 on each neighbour (spec §6 default 2)")
	return cmd
}

func newTerrainErodeCommand(flags *globalFlags) *cobra.Command {
	var iterations int
	var weatheringAmount float64
	cmd := &cobra.Command{
		Use:   "erode <target>",
		Short: "weather and redeposit soil downhill by slope (spec §4.3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := struct {
				Iterations       int     `json:"iterations"`
				WeatheringAmount float64 `json:"weathering_amount"`
			}{Iterations: iterations, WeatheringAmount: weatheringAmount}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "erode", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 10, "erosion iterations (spec §6 default 10)")
	cmd.Flags().Float64Var(&weatheringAmount, "weathering-amount", 1000, "max metres weathered per iteration (spec §6 default 1000)")
	return cmd
}

func newTerrainSeedOceanCommand(flags *globalFlags) *cobra.Command {
	var count, xFilter, yFilter string
	cmd := &cobra.Command{
		Use:     "seed-ocean <target>",
		Aliases: []string{"seed_ocean"},
		Short:   "tag random below-sea-level tiles in a region as Ocean (spec §4.3)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := struct {
				Count   string `json:"count"`
				XFilter string `json:"x_filter,omitempty"`
				YFilter string `json:"y_filter,omitempty"`
			}{Count: count, XFilter: xFilter, YFilter: yFilter}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: "seed_ocean", Args: marshalArgs(a)}, nil)
		},
	}
	cmd.Flags().StringVar(&count, "count", "1", "how many tiles to seed")
	cmd.Flags().StringVar(&xFilter, "x-filter", "0..=1", "normalized x range")
	cmd.Flags().StringVar(&yFilter, "y-filter", "0..=1", "normalized y range")
	return cmd
}

// newTerrainSampleCommand builds sample-ocean-masked / sample-ocean-below
// / sample-elevation, all of which read an external raster registered
// under --source-name (spec §4.3, §6's "Raster input").
func newTerrainSampleCommand(flags *globalFlags, use, command string, hasElevationThreshold bool) *cobra.Command {
	var rasterPath, sourceName string
	var nodata, elevation float64
	var hasNodata bool
	cmd := &cobra.Command{
		Use:   use + " <target>",
		Short: "sample an external raster at tile-site coordinates (spec §4.3, §6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rasterPath == "" {
				return errs.New(errs.Input, "terrain", command, "--raster is required")
			}
			// The raster is placed over the whole globe: Sample maps
			// each tile site's lon/lat through these bounds to a pixel,
			// and still honors --nodata.
			src, err := raster.LoadGeoTIFF(rasterPath, raster.Bounds{West: -180, South: -90, East: 180, North: 90}, nodata, hasNodata)
			if err != nil {
				return err
			}
			if sourceName == "" {
				sourceName = "default"
			}
			sources := map[string]raster.Raster{sourceName: src}

			type argsT struct {
				Source    string  `json:"source"`
				Elevation float64 `json:"elevation,omitempty"`
			}
			a := argsT{Source: sourceName}
			if hasElevationThreshold {
				a.Elevation = elevation
			}
			return runTerrainStep(cmd, flags, args[0], recipe.Step{Command: command, Args: marshalArgs(a)}, sources)
		},
	}
	cmd.Flags().StringVar(&rasterPath, "raster", "", "GeoTIFF raster to sample")
	cmd.Flags().StringVar(&sourceName, "source-name", "default", "name this source is registered under")
	cmd.Flags().Float64Var(&nodata, "nodata", 0, "raster nodata value")
	cmd.Flags().BoolVar(&hasNodata, "has-nodata", false, "whether --nodata marks real nodata pixels")
	if hasElevationThreshold {
		cmd.Flags().Float64Var(&elevation, "elevation", 0, "tiles sampled below this value become Ocean")
	}
	return cmd
}

func newTerrainRecipeSetCommand(flags *globalFlags) *cobra.Command {
	var source, recipeName string
	cmd := &cobra.Command{
		Use:   "recipe-set <target>",
		Short: "run a named recipe out of a recipe-set JSON document (spec §4.3, §6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			data, err := os.ReadFile(source)
			if err != nil {
				return errs.Wrap(errs.IO, "terrain", source, "cannot read recipe-set file", err)
			}
			set, err := recipe.LoadRecipeSet(data)
			if err != nil {
				return err
			}

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StageTerrain, false, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunTerrain(ctx, orchestrator.TerrainParams{RecipeSet: set, Recipe: recipeName}); err != nil {
				s.Close()
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "path to the recipe-set JSON document")
	cmd.Flags().StringVar(&recipeName, "recipe", "", "recipe to run (defaults to the document's default)")
	return cmd
}
