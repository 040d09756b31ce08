package main

import (
	"os"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/culture"
	"cosmopoeia/internal/worldgen/orchestrator"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/spf13/cobra"
)

func newPeopleCommand(flags *globalFlags) *cobra.Command {
	opts := culture.DefaultOptions()
	var overwrite bool
	var cultureSetPath string
	cmd := &cobra.Command{
		Use:   "gen-people <target>",
		Short: "compute habitability and seed + expand cultures (spec §4.7)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			ctx := cmd.Context()

			if cultureSetPath == "" {
				return errs.New(errs.Input, "people", "culture-set", "--culture-set is required")
			}
			defs, err := loadCultureDefinitions(cultureSetPath)
			if err != nil {
				return err
			}

			s, p, err := openPipeline(ctx, target)
			if err != nil {
				return err
			}
			if err := checkOverwrite(p, orchestrator.StagePeople, overwrite, flags.overwriteAll); err != nil {
				s.Close()
				return err
			}
			if err := p.RunPeople(ctx, orchestrator.CultureParams{Definitions: defs, Options: opts}); err != nil {
				s.Close()
				return err
			}
			return saveAndClose(ctx, s, p, defaultBezierScale)
		},
	}
	cmd.Flags().StringVar(&cultureSetPath, "culture-set", "", "path to a culture-set JSON document (spec §6)")
	cmd.Flags().Float64Var(&opts.MinSpacing, "min-spacing", opts.MinSpacing, "minimum degrees between seeded culture centres")
	cmd.Flags().Float64Var(&opts.ExpansionFactor, "expansion-factor", opts.ExpansionFactor, "global culture expansion scale (spec §6 default 1)")
	cmd.Flags().Float64Var(&opts.NeutralLandCost, "neutral-land-cost", opts.NeutralLandCost, "accumulated expansion cost above which a tile is left without a culture")
	cmd.Flags().Float64Var(&opts.RiverCost, "river-cost", opts.RiverCost, "movement cost multiplier for crossing a river")
	cmd.Flags().Float64Var(&opts.WaterCost, "water-cost", opts.WaterCost, "movement cost multiplier for crossing open water")
	cmd.Flags().Float64Var(&opts.SizeVariance, "size-variance", opts.SizeVariance, "0-10, how irregular culture territory boundaries are (0 = deterministic by cost)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "rerun even if gen-people has already completed")
	return cmd
}

// loadCultureDefinitions decodes a culture-set document and resolves
// each entry's TilePreference expression (spec §6, §4.7).
func loadCultureDefinitions(path string) ([]culture.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.IO, "people", path, "failed to read culture-set document", err)
	}
	doc, err := recipe.LoadCultureSetDoc(data)
	if err != nil {
		return nil, err
	}
	defs := make([]culture.Definition, 0, len(doc.Cultures))
	for _, cd := range doc.Cultures {
		pref, err := culture.UnmarshalPreferenceJSON(cd.Preferences)
		if err != nil {
			return nil, err
		}
		defs = append(defs, culture.Definition{
			Name:         cd.Name,
			Type:         tilegraph.CultureType(cd.Type),
			Namer:        cd.Namer,
			Preference:   pref,
			Expansionism: cd.Expansionism,
		})
	}
	return defs, nil
}
