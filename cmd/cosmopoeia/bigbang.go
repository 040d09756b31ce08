package main

import (
	"context"
	"os"

	"cosmopoeia/internal/diagnostics"
	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/metrics"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/store"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newBigBangCommand(flags *globalFlags) *cobra.Command {
	var r rectFlags
	r.tileCount = 10000
	params := orchestrator.DefaultGenerationParams()

	var recipeSetPath, recipeName string
	var cultureSetPath string
	var namerDir string
	var diagnosticsAddr string

	cmd := &cobra.Command{
		Use:   "big-bang <target>",
		Short: "run every stage in sequence against a fresh store (spec §6's `big-bang`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			params.Rect = r.rect()
			params.TileCount = r.tileCount
			params.Seed = flags.seed

			if recipeSetPath == "" {
				return errs.New(errs.Input, "big-bang", "recipe-set", "--recipe-set is required")
			}
			data, err := os.ReadFile(recipeSetPath)
			if err != nil {
				return errs.Wrap(errs.IO, "big-bang", recipeSetPath, "cannot read recipe-set file", err)
			}
			set, err := recipe.LoadRecipeSet(data)
			if err != nil {
				return err
			}
			params.Terrain = orchestrator.TerrainParams{RecipeSet: set, Recipe: recipeName}

			if cultureSetPath == "" {
				return errs.New(errs.Input, "big-bang", "culture-set", "--culture-set is required")
			}
			defs, err := loadCultureDefinitions(cultureSetPath)
			if err != nil {
				return err
			}
			params.Culture.Definitions = defs

			namers, err := loadNamerSet(namerDir)
			if err != nil {
				return err
			}

			var diag *diagnostics.Server
			var diagCancel context.CancelFunc
			if diagnosticsAddr != "" {
				var diagCtx context.Context
				diagCtx, diagCancel = context.WithCancel(ctx)
				m := metrics.NewMetrics()
				diag = diagnostics.New(diagnosticsAddr, m, func() diagnostics.Status {
					return diagnostics.Status{Stage: "big-bang"}
				})
				go diag.ListenAndServe(diagCtx)
				defer diagCancel()
			}

			p, err := orchestrator.BigBang(ctx, params)
			if diagCancel != nil {
				diagCancel()
			}
			if err != nil {
				return err
			}

			nameTowns(p.Graph, p.Seed, namers)
			nameNations(p.Graph, p.Seed, namers)
			nameSubnations(p.Graph, p.Seed, namers)

			s, err := store.Open(target)
			if err != nil {
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	bindRectFlags(cmd, &r)
	cmd.Flags().StringVar(&recipeSetPath, "recipe-set", "", "path to a terrain recipe-set JSON document (spec §4.3, §6)")
	cmd.Flags().StringVar(&recipeName, "recipe", "", "recipe to run; defaults to the recipe-set's default")
	cmd.Flags().StringVar(&cultureSetPath, "culture-set", "", "path to a culture-set JSON document (spec §6)")
	cmd.Flags().StringVar(&namerDir, "namer-dir", "", "directory of namer JSON documents (spec §4.11) used to name towns, nations, and subnations")
	cmd.Flags().StringVar(&diagnosticsAddr, "diagnostics-addr", "", "if set, serve /metrics and /healthz on this address for the run's duration")

	cmd.Flags().Float64Var(&params.Climate.EquatorTemp, "equator-temp", params.Climate.EquatorTemp, "equatorial temperature (spec §6 default 27)")
	cmd.Flags().Float64Var(&params.Climate.PolarTemp, "polar-temp", params.Climate.PolarTemp, "polar temperature (spec §6 default -30)")
	cmd.Flags().Float64Var(&params.Climate.PrecipitationFactor, "precipitation-factor", params.Climate.PrecipitationFactor, "global precipitation scale (spec §6 default 1)")

	cmd.Flags().Float64Var(&params.Hydrology.RiverThreshold, "river-threshold", params.Hydrology.RiverThreshold, "minimum flow for a tile to become a river source")

	cmd.Flags().Float64Var(&params.Biome.WetlandFlowThreshold, "wetland-flow-threshold", params.Biome.WetlandFlowThreshold, "water flow above which a low, flat tile becomes Wetland")
	cmd.Flags().Float64Var(&params.Biome.GlacierTemp, "glacier-temp", params.Biome.GlacierTemp, "temperature at or below which a tile becomes Glacier")

	cmd.Flags().Float64Var(&params.Culture.Options.MinSpacing, "culture-min-spacing", params.Culture.Options.MinSpacing, "minimum degrees between seeded culture centres")
	cmd.Flags().Float64Var(&params.Culture.Options.ExpansionFactor, "culture-expansion-factor", params.Culture.Options.ExpansionFactor, "global culture expansion scale")
	cmd.Flags().Float64Var(&params.Culture.Options.SizeVariance, "culture-size-variance", params.Culture.Options.SizeVariance, "0-10, how irregular culture territory boundaries are")

	cmd.Flags().IntVar(&params.Settlement.CapitalCount, "capital-count", params.Settlement.CapitalCount, "number of capital towns to place")
	cmd.Flags().IntVar(&params.Settlement.TownCount, "town-count", params.Settlement.TownCount, "number of non-capital towns to place")

	cmd.Flags().Float64Var(&params.Nation.ExpansionFactor, "nation-expansion-factor", params.Nation.ExpansionFactor, "global nation expansion scale")
	cmd.Flags().Float64Var(&params.Nation.ForeignCultureFactor, "foreign-culture-factor", params.Nation.ForeignCultureFactor, "movement cost multiplier crossing into a foreign culture's tile")
	cmd.Flags().Float64Var(&params.Nation.SubnationPercentage, "subnation-percentage", params.Nation.SubnationPercentage, "percentage of each nation's non-capital towns that seed a subnation")
	cmd.Flags().Float64Var(&params.Nation.SizeVariance, "nation-size-variance", params.Nation.SizeVariance, "0-10, how irregular nation/subnation territory boundaries are")
	return cmd
}
