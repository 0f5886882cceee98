package gitcmd

import (
	"testing"
	"time"
)

func TestParseCommits(t *testing.T) {
	output := []byte(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\x1f1700000200\x1fJane Smith\x1fbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb cccccccccccccccccccccccccccccccccccccccc\n" +
			"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb\x1f1700000100\x1fJohn Doe\x1fdddddddddddddddddddddddddddddddddddddddd\n" +
			"dddddddddddddddddddddddddddddddddddddddd\x1f1700000000\x1fJohn Doe\x1f\n")

	commits, err := parseCommits(output)
	if err != nil {
		t.Fatalf("parseCommits failed: %v", err)
	}

	if len(commits) != 3 {
		t.Fatalf("Expected 3 commits, got %d", len(commits))
	}

	merge := commits[0]
	if merge.Author != "Jane Smith" {
		t.Errorf("Expected author 'Jane Smith', got %q", merge.Author)
	}
	if len(merge.Parents) != 2 {
		t.Errorf("Expected 2 parents on merge commit, got %d", len(merge.Parents))
	}
	if !merge.Time.Equal(time.Unix(1700000200, 0)) {
		t.Errorf("Unexpected commit time: %v", merge.Time)
	}

	root := commits[2]
	if len(root.Parents) != 0 {
		t.Errorf("Expected root commit to have no parents, got %v", root.Parents)
	}
}

func TestParseCommitsMalformed(t *testing.T) {
	if _, err := parseCommits([]byte("not a log line\n")); err == nil {
		t.Errorf("Expected error for malformed log output")
	}
	if _, err := parseCommits([]byte("aaaa\x1fnot-a-number\x1fJohn\x1f\n")); err == nil {
		t.Errorf("Expected error for malformed commit time")
	}
}

func TestParseTree(t *testing.T) {
	output := []byte(
		"100644 blob e69de29bb2d1d6434b8b29ae775ad8c2e48c5391      12\tmain.go\x00" +
			"040000 tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904       -\tinternal\x00" +
			"100755 blob a94a8fe5ccb19ba61c4c0873d391e987982fbbd3     512\tscripts/run.sh\x00" +
			"120000 link b94a8fe5ccb19ba61c4c0873d391e987982fbbd3       -\tsymlink\x00")

	entries, err := parseTree(output)
	if err != nil {
		t.Fatalf("parseTree failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 blob entries, got %d", len(entries))
	}
	if entries[0].Path != "main.go" || entries[0].Size != 12 {
		t.Errorf("Unexpected first entry: %+v", entries[0])
	}
	if entries[1].Path != "scripts/run.sh" || entries[1].Mode != "100755" {
		t.Errorf("Unexpected second entry: %+v", entries[1])
	}
}

func TestParseTreePathWithSpaces(t *testing.T) {
	output := []byte("100644 blob e69de29bb2d1d6434b8b29ae775ad8c2e48c5391       5\tsrc/my file.go\x00")

	entries, err := parseTree(output)
	if err != nil {
		t.Fatalf("parseTree failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "src/my file.go" {
		t.Errorf("Expected path with spaces to survive parsing, got %+v", entries)
	}
}
