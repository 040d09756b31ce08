package main

import (
	"cosmopoeia/internal/worldgen/nation"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newNationsCommand(flags *globalFlags) *cobra.Command {
	opts := nation.DefaultOptions()
	var overwrite bool
	var namerDir string
	cmd := &cobra.Command{
		Use:   "gen-nations <target>",
		Short: "expand one nation per capital town (spec §4.9)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			namers, err := loadNamerSet(namerDir)
			if err != nil {
				return err
			}

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StageNations, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunNations(ctx, opts); err != nil {
				s.Close()
				return err
			}
			nameNations(p.Graph, p.Seed, namers)
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().Float64Var(&opts.ExpansionFactor, "expansion-factor", opts.ExpansionFactor, "global nation expansion scale (spec §6 default 1)")
	cmd.Flags().Float64Var(&opts.NeutralLandCost, "neutral-land-cost", opts.NeutralLandCost, "accumulated expansion cost above which a tile is left without a nation")
	cmd.Flags().Float64Var(&opts.ForeignCultureFactor, "foreign-culture-factor", opts.ForeignCultureFactor, "movement cost multiplier when crossing into a foreign culture's tile (spec §6 default 2.5)")
	cmd.Flags().Float64Var(&opts.SizeVariance, "size-variance", opts.SizeVariance, "0-10, how irregular nation territory boundaries are (0 = deterministic by cost)")
	cmd.Flags().StringVar(&namerDir, "namer-dir", "", "directory of namer JSON documents (spec §4.11) used to name new nations")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-nations has already completed")
	return cmd
}
