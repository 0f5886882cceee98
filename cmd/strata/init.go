package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"strata/internal/config"
	"strata/internal/errors"
	"strata/internal/gitcmd"
)

var initCmd = &cobra.Command{
	Use:   "init [repo]",
	Short: "Write a default .strata/config.json to a repository",
	Long: `Init creates .strata/config.json with the default settings in the
repository root, ready to be edited. Analysis works without it; the
file only pins defaults for cache location, logging, and charts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	pathArg := "."
	if len(args) == 1 {
		pathArg = args[0]
	}

	repoRoot, err := gitcmd.ResolveRepoRoot(pathArg)
	if err != nil {
		return err
	}

	cfgPath, err := writeInitialConfig(repoRoot)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgPath)
	return nil
}

// writeInitialConfig writes the default config under repoRoot and
// refuses to overwrite an existing one.
func writeInitialConfig(repoRoot string) (string, error) {
	cfgPath := filepath.Join(repoRoot, ".strata", "config.json")
	if _, err := os.Stat(cfgPath); err == nil {
		return "", errors.New(errors.ConfigInvalid, cfgPath+" already exists", nil).
			WithFix(errors.FixAction{
				Command:     "rm " + cfgPath,
				Description: "Remove the existing config before re-initializing",
			})
	}

	if err := config.DefaultConfig().Save(repoRoot); err != nil {
		return "", errors.New(errors.ConfigInvalid, "failed to write "+cfgPath, err)
	}
	return cfgPath, nil
}
