// Package analyze implements the history walk: for each sampled
// commit on a branch, attribute every surviving line of the working
// tree to the commit that last touched it, and aggregate the counts
// into cohort, extension, author, and survival curves.
package analyze

import (
	"context"
	"path"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"strata/internal/cohort"
	"strata/internal/errors"
	"strata/internal/gitcmd"
	"strata/internal/logging"
	"strata/internal/pathfilter"
	"strata/internal/report"
)

// Runner is the subset of git operations the analyzer needs. Tests
// substitute a fake; gitcmd.Client is the real implementation.
type Runner interface {
	ListCommits(rev string) ([]gitcmd.Commit, error)
	ListTree(commit string) ([]gitcmd.TreeEntry, error)
	Diff(oldSHA, newSHA string) ([]byte, error)
	BlameFile(commit, path string) (*gitcmd.BlameFile, error)
}

// BlameCache persists per-file blame histograms between runs.
type BlameCache interface {
	Get(commitSHA, path string) ([]byte, bool, error)
	Put(commitSHA, path string, payload []byte) error
}

// Progress reports walk progress; stage is "commits" while listing
// history and "analyze" during the attribution pass.
type Progress func(stage string, done, total int)

// Options configures an analysis run.
type Options struct {
	// Branch is the revision whose history is walked
	Branch string

	// Cohorts renders commit timestamps into cohort labels
	Cohorts *cohort.Formatter

	// Interval is the minimum spacing between sampled commits
	Interval time.Duration

	// Filter decides which tree paths participate
	Filter *pathfilter.Filter

	// Jobs bounds parallel blame invocations within one commit
	Jobs int

	// Cache is optional; nil disables blame memoization
	Cache BlameCache

	// Logger is optional
	Logger *logging.Logger

	// Progress is optional
	Progress Progress
}

// Result is the aggregate output of a run.
type Result struct {
	Cohorts  *report.Series
	Exts     *report.Series
	Authors  *report.Series
	Survival report.Survival

	CommitsTotal   int
	CommitsSampled int
	FilesBlamed    int
	CacheHits      int
}

// Analyzer walks a repository's history.
type Analyzer struct {
	git  Runner
	opts Options
	log  *logging.Logger

	filesBlamed atomic.Int64
	cacheHits   atomic.Int64
}

// New creates an Analyzer. Cohorts and Filter must be set.
func New(git Runner, opts Options) (*Analyzer, error) {
	if opts.Cohorts == nil || opts.Filter == nil {
		return nil, errors.New(errors.InternalError, "analyzer needs a cohort formatter and a path filter", nil)
	}
	if opts.Interval <= 0 {
		opts.Interval = 7 * 24 * time.Hour
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.InfoLevel,
		})
	}
	return &Analyzer{git: git, opts: opts, log: opts.Logger}, nil
}

// commitIndex is the branch-wide commit metadata the attribution pass
// consults for every blamed line.
type commitIndex struct {
	cohort map[string]string
	author map[string]string
	code   map[string]bool // commits with exactly one parent
}

// Run walks the history and aggregates all curves.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	commits, err := a.git.ListCommits(a.opts.Branch)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, errors.New(errors.BranchNotFound, "no commits found on "+a.opts.Branch, nil)
	}
	a.progress("commits", len(commits), len(commits))

	idx := &commitIndex{
		cohort: make(map[string]string, len(commits)),
		author: make(map[string]string, len(commits)),
		code:   make(map[string]bool),
	}
	curves := newCurveSet()
	for _, c := range commits {
		label := a.opts.Cohorts.Label(c.Time)
		idx.cohort[c.SHA] = label
		idx.author[c.SHA] = c.Author
		if len(c.Parents) == 1 {
			idx.code[c.SHA] = true
		}
		curves.register(Key{Kind: KindCohort, Item: label})
		curves.register(Key{Kind: KindAuthor, Item: c.Author})
	}

	sampled := sampleFirstParent(commits, a.opts.Interval)
	a.log.Info("Walking sampled history", map[string]interface{}{
		"branch":  a.opts.Branch,
		"commits": len(commits),
		"sampled": len(sampled),
	})

	fileHists := make(map[string]Histogram)
	survival := make(report.Survival)
	ts := make([]time.Time, 0, len(sampled))
	prevSHA := ""

	for i, commit := range sampled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changed, err := a.changedSince(prevSHA, commit.SHA)
		if err != nil {
			return nil, err
		}

		entries, err := a.git.ListTree(commit.SHA)
		if err != nil {
			return nil, err
		}

		var tracked, stale []string
		for _, e := range entries {
			if !a.opts.Filter.Match(e.Path) {
				continue
			}
			tracked = append(tracked, e.Path)
			if _, seen := fileHists[e.Path]; !seen || changed[e.Path] {
				stale = append(stale, e.Path)
			}
		}

		hists, err := a.blameFiles(ctx, commit.SHA, stale, idx)
		if err != nil {
			return nil, err
		}
		for j, p := range stale {
			fileHists[p] = hists[j]
		}

		total := make(Histogram)
		for _, p := range tracked {
			for k, v := range fileHists[p] {
				total[k] += v
			}
		}

		curves.observe(total)
		ts = append(ts, commit.Time)
		for k, v := range total {
			if k.Kind == KindSHA {
				survival[k.Item] = append(survival[k.Item],
					report.SurvivalPoint{commit.Time.Unix(), int64(v)})
			}
		}

		prevSHA = commit.SHA
		a.progress("analyze", i+1, len(sampled))
	}

	return &Result{
		Cohorts: report.BuildSeries(curves.byKind(KindCohort), ts, func(label string) string {
			return "Code added in " + label
		}),
		Exts:           report.BuildSeries(curves.byKind(KindExt), ts, nil),
		Authors:        report.BuildSeries(curves.byKind(KindAuthor), ts, nil),
		Survival:       survival,
		CommitsTotal:   len(commits),
		CommitsSampled: len(sampled),
		FilesBlamed:    int(a.filesBlamed.Load()),
		CacheHits:      int(a.cacheHits.Load()),
	}, nil
}

// changedSince returns the set of paths touched between two sampled
// commits. The first sampled commit has no predecessor; every file is
// unseen then, so an empty set is fine.
func (a *Analyzer) changedSince(prevSHA, sha string) (map[string]bool, error) {
	if prevSHA == "" {
		return nil, nil
	}
	unified, err := a.git.Diff(prevSHA, sha)
	if err != nil {
		return nil, err
	}
	paths, err := gitcmd.ChangedPaths(unified)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to parse diff between sampled commits", err)
	}
	changed := make(map[string]bool, len(paths))
	for _, p := range paths {
		changed[p] = true
	}
	return changed, nil
}

// blameFiles computes histograms for the given paths at one commit,
// fanning out to Jobs workers. Results are positional so aggregation
// order never depends on scheduling.
func (a *Analyzer) blameFiles(ctx context.Context, commitSHA string, paths []string, idx *commitIndex) ([]Histogram, error) {
	results := make([]Histogram, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Jobs)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.blameOne(commitSHA, p, idx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// blameOne produces one file's histogram, consulting the cache first.
// The cache stores raw blame records, not histograms: attribution
// depends on the run's cohort format and branch index, so it is
// re-applied on every read. Blame failures (binary files, mostly)
// degrade to an empty histogram so a single odd file never aborts the
// walk.
func (a *Analyzer) blameOne(commitSHA, p string, idx *commitIndex) Histogram {
	if a.opts.Cache != nil {
		payload, ok, err := a.opts.Cache.Get(commitSHA, p)
		if err != nil {
			a.log.Warn("Blame cache read failed", map[string]interface{}{
				"path":  p,
				"error": err.Error(),
			})
		} else if ok {
			if rec, err := unmarshalRecord(payload); err == nil {
				a.cacheHits.Add(1)
				return buildHistogram(rec, p, idx)
			}
		}
	}

	bf, err := a.git.BlameFile(commitSHA, p)
	if err != nil {
		a.log.Warn("Skipping unblameable file", map[string]interface{}{
			"path":   p,
			"commit": commitSHA,
			"error":  err.Error(),
		})
		return Histogram{}
	}
	a.filesBlamed.Add(1)

	rec := newBlameRecord(bf)
	if a.opts.Cache != nil {
		if payload, err := rec.marshal(); err == nil {
			if err := a.opts.Cache.Put(commitSHA, p, payload); err != nil {
				a.log.Warn("Blame cache write failed", map[string]interface{}{
					"path":  p,
					"error": err.Error(),
				})
			}
		}
	}
	return buildHistogram(rec, p, idx)
}

// buildHistogram attributes a file's surviving lines. A blamed commit
// outside the branch listing falls into the MISSING cohort; its
// author comes from the blame metadata instead.
func buildHistogram(rec blameRecord, p string, idx *commitIndex) Histogram {
	h := make(Histogram)
	ext := path.Ext(p)

	for sha, lines := range rec.Lines {
		label, onBranch := idx.cohort[sha]
		if !onBranch {
			label = MissingCohort
		}
		author := idx.author[sha]
		if author == "" {
			author = rec.Authors[sha]
		}
		if author == "" {
			author = "Unknown"
		}

		h[Key{Kind: KindCohort, Item: label}] += lines
		h[Key{Kind: KindExt, Item: ext}] += lines
		h[Key{Kind: KindAuthor, Item: author}] += lines
		if idx.code[sha] {
			h[Key{Kind: KindSHA, Item: sha}] += lines
		}
	}
	return h
}

func (a *Analyzer) progress(stage string, done, total int) {
	if a.opts.Progress != nil {
		a.opts.Progress(stage, done, total)
	}
}
