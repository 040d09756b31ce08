package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the flags spec §6 calls out as global: target path
// is always the first positional argument, not a flag, since every
// subcommand needs it.
type globalFlags struct {
	seed         int64
	overwriteAll bool
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "cosmopoeia",
		Short:         "Procedural fantasy-world generator for GIS workflows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "deterministic RNG seed for this invocation")
	root.PersistentFlags().BoolVar(&flags.overwriteAll, "overwrite-all", false, "rerun every stage even if already present in the store")

	root.AddCommand(
		newCreateCommand(&flags),
		newTerrainCommand(&flags),
		newClimateCommand(&flags),
		newHydrologyCommand(&flags),
		newBiomeCommand(&flags),
		newPeopleCommand(&flags),
		newTownsCommand(&flags),
		newNationsCommand(&flags),
		newSubnationsCommand(&flags),
		newBigBangCommand(&flags),
	)
	return root
}
