package main

import (
	"cosmopoeia/internal/worldgen/climate"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newClimateCommand(flags *globalFlags) *cobra.Command {
	opts := climate.DefaultOptions()
	var windRange []float64
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "gen-climate <target>",
		Short: "assign temperature, wind, and precipitation to every tile (spec §4.4)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			// --wind-range entries override bands in order (spec §4.4, §6).
			for i := 0; i < len(windRange) && i < len(opts.WindDirections); i++ {
				opts.WindDirections[i] = windRange[i]
			}

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StageClimate, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunClimate(ctx, opts); err != nil {
				s.Close()
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().Float64Var(&opts.EquatorTemp, "equator-temp", opts.EquatorTemp, "equatorial temperature (spec §6 default 27)")
	cmd.Flags().Float64Var(&opts.PolarTemp, "polar-temp", opts.PolarTemp, "polar temperature (spec §6 default -30)")
	cmd.Flags().Float64Var(&opts.ElevationCoolingK, "elevation-cooling-k", opts.ElevationCoolingK, "temperature lapse rate per metre of elevation above sea level")
	cmd.Flags().Float64Var(&opts.PrecipitationFactor, "precipitation-factor", opts.PrecipitationFactor, "global precipitation scale (spec §6 default 1)")
	cmd.Flags().Float64SliceVar(&windRange, "wind-range", nil, "override the six-band wind directions in order (N-polar,N-mid,N-trop,S-trop,S-mid,S-polar)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-climate has already completed")
	return cmd
}
