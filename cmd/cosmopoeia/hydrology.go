package main

import (
	"cosmopoeia/internal/worldgen/hydrology"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newHydrologyCommand(flags *globalFlags) *cobra.Command {
	opts := hydrology.DefaultOptions()
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "gen-water <target>",
		Short: "route water downhill, form lakes, and synthesize rivers (spec §4.5)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StageWater, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunHydrology(ctx, opts); err != nil {
				s.Close()
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().Float64Var(&opts.RiverThreshold, "river-threshold", opts.RiverThreshold, "minimum flow for a tile to become a river source (spec §6 default 10)")
	cmd.Flags().Float64Var(&opts.Lakes.FrozenTemp, "lake-frozen-temp", opts.Lakes.FrozenTemp, "lake surface temperature below which it is Frozen")
	cmd.Flags().Float64Var(&opts.Lakes.AridLatitude, "lake-arid-latitude", opts.Lakes.AridLatitude, "latitude above which an outletless lake is Salt")
	cmd.Flags().Float64Var(&opts.Lakes.MarshDepth, "lake-marsh-depth", opts.Lakes.MarshDepth, "surface-to-bed depth below which a lake is Marsh")
	cmd.Flags().Float64Var(&opts.Lakes.PluvialFlow, "lake-pluvial-flow", opts.Lakes.PluvialFlow, "inflow above which an outletless lake is Pluvial")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-water has already completed")
	return cmd
}
