package main

import (
	"cosmopoeia/internal/worldgen/orchestrator"
	"cosmopoeia/internal/worldgen/settlement"

	"github.com/spf13/cobra"
)

func newTownsCommand(flags *globalFlags) *cobra.Command {
	opts := settlement.DefaultOptions()
	var overwrite bool
	var namerDir string
	cmd := &cobra.Command{
		Use:   "gen-towns <target>",
		Short: "place capitals and towns by habitability score (spec §4.8)",
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
			if err := checkOverwrite(p, orchestrator.StageTowns, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunTowns(ctx, opts); err != nil {
				s.Close()
				return err
			}
			nameTowns(p.Graph, p.Seed, namers)
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().IntVar(&opts.CapitalCount, "capital-count", opts.CapitalCount, "number of capital towns to place, one per culture at most")
	cmd.Flags().IntVar(&opts.TownCount, "town-count", opts.TownCount, "number of non-capital towns to place")
	cmd.Flags().Float64Var(&opts.CapitalSpacing, "capital-spacing", opts.CapitalSpacing, "minimum degrees between capitals")
	cmd.Flags().Float64Var(&opts.TownSpacing, "town-spacing", opts.TownSpacing, "minimum degrees between towns")
	cmd.Flags().Float64Var(&opts.ScoreThreshold, "score-threshold", opts.ScoreThreshold, "minimum habitability score for a tile to host a town")
	cmd.Flags().StringVar(&namerDir, "namer-dir", "", "directory of namer JSON documents (spec §4.11) used to name new towns")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-towns has already completed")
	return cmd
}
