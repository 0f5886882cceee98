// Package pathfilter decides which repository paths take part in an
// analysis run.
package pathfilter

import (
	"path"
	"regexp"
	"strings"
)

// Options configures a Filter.
type Options struct {
	// AllFiletypes disables the default source-code filetype check
	AllFiletypes bool

	// Only patterns must all match a path for it to be included
	Only []string

	// Ignore patterns each exclude matching paths independently
	Ignore []string
}

// Filter matches paths against the filetype, only, and ignore rules.
// Match results are memoized per path; the same paths come back for
// every sampled commit, so the cache hit rate is high.
type Filter struct {
	opts     Options
	defaults []*regexp.Regexp
	only     []*regexp.Regexp
	ignore   []*regexp.Regexp
	verdicts map[string]bool
}

// New creates a Filter. Invalid glob patterns never match.
func New(opts Options) *Filter {
	f := &Filter{
		opts:     opts,
		only:     compileGlobs(opts.Only),
		ignore:   compileGlobs(opts.Ignore),
		verdicts: make(map[string]bool),
	}
	if !opts.AllFiletypes {
		f.defaults = compileGlobs(DefaultPatterns)
	}
	return f
}

// Match reports whether a repository-relative path participates in the
// analysis. Not safe for concurrent use.
func (f *Filter) Match(p string) bool {
	if verdict, ok := f.verdicts[p]; ok {
		return verdict
	}
	verdict := f.match(p)
	f.verdicts[p] = verdict
	return verdict
}

func (f *Filter) match(p string) bool {
	if !f.opts.AllFiletypes {
		base := path.Base(p)
		matched := false
		for _, re := range f.defaults {
			if re.MatchString(base) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.only {
		if !re.MatchString(p) {
			return false
		}
	}
	for _, re := range f.ignore {
		if re.MatchString(p) {
			return false
		}
	}
	return true
}

// compileGlobs converts fnmatch-style globs to anchored regexps.
// Unlike path.Match, '*' crosses directory separators here, so a
// pattern like "*test*" excludes test files anywhere in the tree.
func compileGlobs(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(globToRegexp(pattern))
		if err != nil {
			continue
		}
		res = append(res, re)
	}
	return res
}

func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			// Pass character classes through, negation included
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				b.WriteString(regexp.QuoteMeta(string(c)))
				continue
			}
			class := pattern[i : i+end+2]
			if strings.HasPrefix(class, "[!") {
				class = "[^" + class[2:]
			}
			b.WriteString(class)
			i += end + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return b.String()
}
