package analyze

import (
	"testing"
	"time"

	"strata/internal/gitcmd"
)

func commitAt(sha string, t time.Time, parents ...string) gitcmd.Commit {
	return gitcmd.Commit{SHA: sha, Time: t, Parents: parents}
}

func TestSampleFirstParentInterval(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	// Newest first: daily commits over ten days
	var commits []gitcmd.Commit
	for i := 0; i <= 9; i++ {
		c := commitAt(shaFor(i), base.Add(time.Duration(i)*day))
		if i > 0 {
			c.Parents = []string{shaFor(i - 1)}
		}
		commits = append([]gitcmd.Commit{c}, commits...)
	}
	sampled := sampleFirstParent(commits, 3*day)

	// Head (day 9) kept, then day 5, day 1: strictly more than 3 days apart
	if len(sampled) != 3 {
		t.Fatalf("Expected 3 sampled commits, got %d: %v", len(sampled), shas(sampled))
	}
	if sampled[0].SHA != shaFor(1) || sampled[2].SHA != shaFor(9) {
		t.Errorf("Expected oldest-first [d1 d5 d9], got %v", shas(sampled))
	}
}

func TestSampleFirstParentFollowsFirstParent(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour

	// Merge commit: first parent m1, second parent f1 (feature branch)
	commits := []gitcmd.Commit{
		commitAt("merge", base.Add(3*week), "m1", "f1"),
		commitAt("f1", base.Add(2*week), "root"),
		commitAt("m1", base.Add(week), "root"),
		commitAt("root", base),
	}

	sampled := sampleFirstParent(commits, time.Hour)

	want := []string{"root", "m1", "merge"}
	got := shas(sampled)
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestSampleFirstParentMissingParent(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	// Shallow history: parent of the oldest listed commit is absent
	commits := []gitcmd.Commit{
		commitAt("b", base.Add(time.Hour), "a"),
		commitAt("a", base, "missing"),
	}

	sampled := sampleFirstParent(commits, time.Minute)
	if len(sampled) != 2 {
		t.Fatalf("Expected walk to stop at missing parent, got %v", shas(sampled))
	}
}

func TestSampleFirstParentEmpty(t *testing.T) {
	if got := sampleFirstParent(nil, time.Hour); got != nil {
		t.Errorf("Expected nil for empty history, got %v", got)
	}
}

func shaFor(i int) string {
	return string(rune('a' + i))
}

func shas(commits []gitcmd.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.SHA
	}
	return out
}
