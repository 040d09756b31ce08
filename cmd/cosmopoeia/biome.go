package main

import (
	"cosmopoeia/internal/worldgen/biome"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newBiomeCommand(flags *globalFlags) *cobra.Command {
	opts := biome.DefaultOptions()
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "gen-biome <target>",
		Short: "classify every tile's biome from temperature and moisture (spec §4.6)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StageBiome, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunBiome(ctx, opts); err != nil {
				s.Close()
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().Float64Var(&opts.WetlandFlowThreshold, "wetland-flow-threshold", opts.WetlandFlowThreshold, "water flow above which a low, flat tile becomes Wetland")
	cmd.Flags().Float64Var(&opts.WetlandMaxElevation, "wetland-max-elevation", opts.WetlandMaxElevation, "elevation ceiling for the Wetland override")
	cmd.Flags().Float64Var(&opts.GlacierTemp, "glacier-temp", opts.GlacierTemp, "temperature at or below which a tile becomes Glacier")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-biome has already completed")
	return cmd
}
