package gitcmd

import (
	"sort"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Diff returns the raw unified diff between two commits. Renames are
// not detected so both sides of a moved file show up as changes.
func (c *Client) Diff(oldSHA, newSHA string) ([]byte, error) {
	return c.run("diff", "--no-color", "--no-ext-diff", "--no-renames", oldSHA, newSHA)
}

// ChangedPaths extracts the set of paths touched by a unified diff,
// both old and new sides, sorted and de-duplicated.
func ChangedPaths(unified []byte) ([]string, error) {
	if len(unified) == 0 {
		return nil, nil
	}

	fileDiffs, err := diff.ParseMultiFileDiff(unified)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, fd := range fileDiffs {
		for _, name := range []string{fd.OrigName, fd.NewName} {
			if p, ok := diffPath(name); ok {
				seen[p] = true
			}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// diffPath strips the a/ or b/ prefix from a diff file name and
// rejects the /dev/null placeholder for created or deleted files.
func diffPath(name string) (string, bool) {
	if name == "" || name == "/dev/null" {
		return "", false
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:], true
	}
	return name, true
}
