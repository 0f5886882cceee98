package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"strata/internal/analyze"
	"strata/internal/cache"
	"strata/internal/cohort"
	"strata/internal/config"
	"strata/internal/gitcmd"
	"strata/internal/pathfilter"
	"strata/internal/report"
)

var (
	analyzeBranch       string
	analyzeCohortFormat string
	analyzeInterval     int64
	analyzeIgnore       []string
	analyzeOnly         []string
	analyzeOutdir       string
	analyzeAllFiletypes bool
	analyzeJobs         int
	analyzeNoCache      bool
	analyzeFormat       string
	analyzeQuiet        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo]",
	Short: "Walk a repository's history and emit code age series",
	Long: `Analyze walks the commit history of a branch, sampling commits at a
fixed interval, and attributes every surviving line at each sampled
commit to the cohort, extension, and author that last touched it.

The aggregates land in the output directory as cohorts.json,
exts.json, authors.json, and survival.json, plus a run.json manifest
describing the run. Settings come from flags, then strata.toml in the
repository root, then .strata/config.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeBranch, "branch", "", "branch to walk (default: current branch)")
	analyzeCmd.Flags().StringVar(&analyzeCohortFormat, "cohort-format", "", "strftime-style cohort label format (default: %Y)")
	analyzeCmd.Flags().Int64Var(&analyzeInterval, "interval", 0, "minimum seconds between sampled commits (default: one week)")
	analyzeCmd.Flags().StringArrayVar(&analyzeIgnore, "ignore", nil, "glob pattern of paths to exclude (repeatable)")
	analyzeCmd.Flags().StringArrayVar(&analyzeOnly, "only", nil, "glob pattern paths must match (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeOutdir, "outdir", "o", ".", "directory to write the JSON series to")
	analyzeCmd.Flags().BoolVar(&analyzeAllFiletypes, "all-filetypes", false, "include all files, not just known source code")
	analyzeCmd.Flags().IntVar(&analyzeJobs, "jobs", 0, "parallel blame processes (default: from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "skip the blame cache for this run")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "output format: json, yaml, or human")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress progress and non-error logs")

	rootCmd.AddCommand(analyzeCmd)
}

// analyzeResponse is the summary printed after a run.
type analyzeResponse struct {
	RunID          string   `json:"runId" yaml:"runId"`
	Repo           string   `json:"repo" yaml:"repo"`
	Branch         string   `json:"branch" yaml:"branch"`
	Head           string   `json:"head" yaml:"head"`
	CommitsTotal   int      `json:"commitsTotal" yaml:"commitsTotal"`
	CommitsSampled int      `json:"commitsSampled" yaml:"commitsSampled"`
	FilesBlamed    int      `json:"filesBlamed" yaml:"filesBlamed"`
	CacheHits      int      `json:"cacheHits" yaml:"cacheHits"`
	Outputs        []string `json:"outputs" yaml:"outputs"`
	DurationMs     int64    `json:"durationMs" yaml:"durationMs"`
}

func (r analyzeResponse) human() string {
	out := fmt.Sprintf("Analyzed %s (%s at %.8s)\n", r.Repo, r.Branch, r.Head)
	out += fmt.Sprintf("  commits: %d total, %d sampled\n", r.CommitsTotal, r.CommitsSampled)
	out += fmt.Sprintf("  blame:   %d files blamed, %d cache hits\n", r.FilesBlamed, r.CacheHits)
	out += fmt.Sprintf("  took:    %s\n", time.Duration(r.DurationMs)*time.Millisecond)
	out += "Wrote:\n"
	for _, p := range r.Outputs {
		out += "  " + p + "\n"
	}
	return out
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	started := time.Now()

	pathArg := "."
	if len(args) == 1 {
		pathArg = args[0]
	}

	repoRoot, cfg, manifest, err := openRepo(pathArg)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, analyzeQuiet)

	if _, err := gitcmd.GitVersion(); err != nil {
		return err
	}

	opts := resolveAnalyzeOptions(cmd, cfg, manifest)

	git := gitcmd.NewClient(repoRoot)
	branch := opts.branch
	if branch == "" {
		branch, err = git.CurrentBranch()
		if err != nil {
			return err
		}
	}
	head, err := git.ResolveBranch(branch)
	if err != nil {
		return err
	}

	formatter, err := cohort.New(opts.cohortFormat)
	if err != nil {
		return err
	}
	filter := pathfilter.New(pathfilter.Options{
		AllFiletypes: opts.allFiletypes,
		Only:         opts.only,
		Ignore:       opts.ignore,
	})

	var blameCache analyze.BlameCache
	if cfg.Cache.Enabled && !analyzeNoCache {
		c, err := cache.Open(cfg.CachePath(repoRoot), logger)
		if err != nil {
			return err
		}
		defer c.Close()
		blameCache = c
	}

	showProgress := progressEnabled(analyzeQuiet, os.Stderr)
	var bar *progressbar.ProgressBar
	progress := func(stage string, done, total int) {
		if !showProgress || stage != "analyze" {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("analyzing commits"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}

	analyzer, err := analyze.New(git, analyze.Options{
		Branch:   branch,
		Cohorts:  formatter,
		Interval: time.Duration(opts.intervalSeconds) * time.Second,
		Filter:   filter,
		Jobs:     opts.jobs,
		Cache:    blameCache,
		Logger:   logger,
		Progress: progress,
	})
	if err != nil {
		return err
	}

	ctx, cancel := newContext()
	defer cancel()

	result, err := analyzer.Run(ctx)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	finished := time.Now()
	manifestOut := &report.Manifest{
		RunID:           report.NewRunID(),
		Repo:            repoRoot,
		Branch:          branch,
		Head:            head,
		CohortFormat:    opts.cohortFormat,
		IntervalSeconds: opts.intervalSeconds,
		Ignore:          opts.ignore,
		Only:            opts.only,
		AllFiletypes:    opts.allFiletypes,
		CommitsTotal:    result.CommitsTotal,
		CommitsSampled:  result.CommitsSampled,
		FilesBlamed:     result.FilesBlamed,
		CacheHits:       result.CacheHits,
		StartedAt:       started.UTC().Format(time.RFC3339),
		FinishedAt:      finished.UTC().Format(time.RFC3339),
		DurationMs:      finished.Sub(started).Milliseconds(),
	}

	outputs := []struct {
		name string
		v    interface{}
	}{
		{"cohorts.json", result.Cohorts},
		{"exts.json", result.Exts},
		{"authors.json", result.Authors},
		{"survival.json", result.Survival},
		{"run.json", manifestOut},
	}
	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		p := filepath.Join(analyzeOutdir, out.name)
		if err := report.WriteJSON(p, out.v); err != nil {
			return err
		}
		written = append(written, p)
	}

	resp := analyzeResponse{
		RunID:          manifestOut.RunID,
		Repo:           repoRoot,
		Branch:         branch,
		Head:           head,
		CommitsTotal:   result.CommitsTotal,
		CommitsSampled: result.CommitsSampled,
		FilesBlamed:    result.FilesBlamed,
		CacheHits:      result.CacheHits,
		Outputs:        written,
		DurationMs:     manifestOut.DurationMs,
	}
	rendered, err := formatResponse(resp, analyzeFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// analyzeSettings is the effective configuration for one run after
// merging flags, the repository manifest, and the config file.
type analyzeSettings struct {
	branch          string
	cohortFormat    string
	intervalSeconds int64
	ignore          []string
	only            []string
	allFiletypes    bool
	jobs            int
}

// resolveAnalyzeOptions merges settings by precedence: explicit flags
// win over strata.toml, which wins over .strata/config.json.
func resolveAnalyzeOptions(cmd *cobra.Command, cfg *config.Config, manifest *config.Manifest) analyzeSettings {
	s := analyzeSettings{
		cohortFormat:    cfg.Analyze.CohortFormat,
		intervalSeconds: cfg.Analyze.IntervalSeconds,
		jobs:            cfg.Analyze.Jobs,
	}

	if manifest != nil {
		if manifest.Branch != "" {
			s.branch = manifest.Branch
		}
		if manifest.CohortFormat != "" {
			s.cohortFormat = manifest.CohortFormat
		}
		if manifest.IntervalSeconds > 0 {
			s.intervalSeconds = manifest.IntervalSeconds
		}
		s.ignore = append(s.ignore, manifest.Ignore...)
		s.only = append(s.only, manifest.Only...)
		s.allFiletypes = manifest.AllFiletypes
	}

	if cmd.Flags().Changed("branch") {
		s.branch = analyzeBranch
	}
	if cmd.Flags().Changed("cohort-format") {
		s.cohortFormat = analyzeCohortFormat
	}
	if cmd.Flags().Changed("interval") {
		s.intervalSeconds = analyzeInterval
	}
	if cmd.Flags().Changed("all-filetypes") {
		s.allFiletypes = analyzeAllFiletypes
	}
	if cmd.Flags().Changed("jobs") {
		s.jobs = analyzeJobs
	}
	s.ignore = append(s.ignore, analyzeIgnore...)
	s.only = append(s.only, analyzeOnly...)

	return s
}
