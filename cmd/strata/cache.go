package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strata/internal/cache"
)

var (
	cacheRepo   string
	cacheFormat string
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the blame cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show blame cache size and entry count",
	Args:  cobra.NoArgs,
	RunE:  runCacheStatus,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all blame cache entries",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheRepo, "repo", ".", "path inside the repository")
	cacheStatusCmd.Flags().StringVar(&cacheFormat, "format", "human", "output format: json, yaml, or human")

	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// cacheStatusResponse wraps cache.Status for output formatting.
type cacheStatusResponse struct {
	Path      string `json:"path" yaml:"path"`
	Entries   int64  `json:"entries" yaml:"entries"`
	SizeBytes int64  `json:"sizeBytes" yaml:"sizeBytes"`
}

func (r cacheStatusResponse) human() string {
	return fmt.Sprintf("Blame cache at %s: %d entries, %d bytes\n", r.Path, r.Entries, r.SizeBytes)
}

func openCache(pathArg string) (*cache.Cache, error) {
	repoRoot, cfg, _, err := openRepo(pathArg)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, false)
	return cache.Open(cfg.CachePath(repoRoot), logger)
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	c, err := openCache(cacheRepo)
	if err != nil {
		return err
	}
	defer c.Close()

	status, err := c.Status()
	if err != nil {
		return err
	}

	rendered, err := formatResponse(cacheStatusResponse{
		Path:      status.Path,
		Entries:   status.Entries,
		SizeBytes: status.SizeBytes,
	}, cacheFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache(cacheRepo)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Blame cache cleared")
	return nil
}
