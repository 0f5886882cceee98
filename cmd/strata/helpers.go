package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"strata/internal/config"
	"strata/internal/gitcmd"
	"strata/internal/logging"
)

// newLogger builds the command logger from config. STRATA_LOG_LEVEL
// overrides the configured level; quiet suppresses everything below
// errors so scripted runs stay silent.
func newLogger(cfg *config.Config, quiet bool) *logging.Logger {
	level := logging.ParseLevel(cfg.Logging.Level)
	if env := os.Getenv("STRATA_LOG_LEVEL"); env != "" {
		level = logging.ParseLevel(env)
	}
	if quiet {
		level = logging.ErrorLevel
	}

	format := logging.HumanFormat
	if cfg.Logging.Format == string(logging.JSONFormat) {
		format = logging.JSONFormat
	}

	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  level,
	})
}

// openRepo resolves the repository root from a path argument and loads
// its config and optional manifest.
func openRepo(pathArg string) (string, *config.Config, *config.Manifest, error) {
	if pathArg == "" {
		pathArg = "."
	}

	repoRoot, err := gitcmd.ResolveRepoRoot(pathArg)
	if err != nil {
		return "", nil, nil, err
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return "", nil, nil, err
	}

	manifest, err := config.LoadManifest(repoRoot)
	if err != nil {
		return "", nil, nil, err
	}

	return repoRoot, cfg, manifest, nil
}

// newContext returns a context cancelled on SIGINT or SIGTERM, so a
// long history walk can be interrupted cleanly.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// progressEnabled reports whether a progress bar should render on out:
// never under --quiet, and never when out is not a terminal.
func progressEnabled(quiet bool, out *os.File) bool {
	return !quiet && term.IsTerminal(int(out.Fd()))
}

// plotDefaults returns the configured plot defaults when run inside a
// repository, and the built-in defaults otherwise. Plot commands work
// on emitted JSON and may run anywhere, so a missing repository is not
// an error here.
func plotDefaults() config.PlotConfig {
	repoRoot, err := gitcmd.ResolveRepoRoot(".")
	if err != nil {
		return config.DefaultConfig().Plot
	}
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return config.DefaultConfig().Plot
	}
	return cfg.Plot
}

// applyPlotDefaults fills chart dimensions from config for flags the
// user left unchanged. maxLabels is nil for charts without label
// folding.
func applyPlotDefaults(changed func(string) bool, defaults config.PlotConfig, width, height *float64, maxLabels *int) {
	if !changed("width") {
		*width = defaults.WidthInches
	}
	if !changed("height") {
		*height = defaults.HeightInches
	}
	if maxLabels != nil && !changed("max-labels") {
		*maxLabels = defaults.MaxLabels
	}
}
