package main

import (
	"cosmopoeia/internal/worldgen/nation"
	"cosmopoeia/internal/worldgen/orchestrator"

	"github.com/spf13/cobra"
)

func newSubnationsCommand(flags *globalFlags) *cobra.Command {
	opts := nation.DefaultOptions()
	var overwrite bool
	var namerDir string
	cmd := &cobra.Command{
		Use:   "gen-subnations <target>",
		Short: "expand internal administrative divisions within each nation (spec §4.9)",
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
			if err := checkOverwrite(p, orchestrator.StageSubs, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunSubnations(ctx, opts); err != nil {
				s.Close()
				return err
			}
			nameSubnations(p.Graph, p.Seed, namers)
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().Float64Var(&opts.ExpansionFactor, "expansion-factor", opts.ExpansionFactor, "global subnation expansion scale")
	cmd.Flags().Float64Var(&opts.NeutralLandCost, "neutral-land-cost", opts.NeutralLandCost, "accumulated expansion cost above which a tile is left without a subnation")
	cmd.Flags().Float64Var(&opts.ForeignCultureFactor, "foreign-culture-factor", opts.ForeignCultureFactor, "movement cost multiplier when crossing into a foreign culture's tile")
	cmd.Flags().Float64Var(&opts.SubnationPercentage, "subnation-percentage", opts.SubnationPercentage, "percentage of each nation's non-capital towns that seed a subnation (spec §6 default 20)")
	cmd.Flags().Float64Var(&opts.SizeVariance, "size-variance", opts.SizeVariance, "0-10, how irregular subnation territory boundaries are (0 = deterministic by cost)")
	cmd.Flags().StringVar(&namerDir, "namer-dir", "", "directory of namer JSON documents (spec §4.11) used to name new subnations")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-subnations has already completed")
	return cmd
}
