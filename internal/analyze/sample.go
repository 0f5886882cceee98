package analyze

import (
	"time"

	"strata/internal/gitcmd"
)

// sampleFirstParent walks the first-parent chain from the branch head
// and keeps the head plus every commit more than interval older than
// the previously kept one. The returned slice is oldest first, which
// is the order the attribution pass runs in.
//
// commits must be the newest-first listing from ListCommits; the walk
// stops cleanly if a parent is missing (shallow clone).
func sampleFirstParent(commits []gitcmd.Commit, interval time.Duration) []gitcmd.Commit {
	if len(commits) == 0 {
		return nil
	}

	bySHA := make(map[string]gitcmd.Commit, len(commits))
	for _, c := range commits {
		bySHA[c.SHA] = c
	}

	var kept []gitcmd.Commit
	var lastKept time.Time

	current, ok := commits[0], true
	for ok {
		if lastKept.IsZero() || current.Time.Before(lastKept.Add(-interval)) {
			kept = append(kept, current)
			lastKept = current.Time
		}
		if len(current.Parents) == 0 {
			break
		}
		current, ok = bySHA[current.Parents[0]]
	}

	// Reverse to oldest-first
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
