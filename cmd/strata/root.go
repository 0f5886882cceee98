package main

import (
	"github.com/spf13/cobra"

	"strata/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata - code age analysis for git repositories",
	Long: `Strata walks a git repository's commit history and estimates, per
commit, how many surviving lines of code were written in each calendar
cohort. The emitted JSON series feed the stack-plot and survival-plot
commands, which render stacked-area and survival-curve charts.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("strata version {{.Version}}\n")
}
