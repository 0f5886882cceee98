package gitcmd

import (
	"testing"
)

// Porcelain output for a 4-line file: three lines from one commit, one
// from another. The second group from the first commit repeats the sha
// header without author fields, which is what git actually emits.
var blameFixture = []byte(`aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 1 1 2
author John Doe
author-mail <john@example.com>
author-time 1600000000
author-tz +0000
committer John Doe
committer-mail <john@example.com>
committer-time 1600000000
committer-tz +0000
summary Initial commit
filename main.go
	package main
aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 2 2
	
bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb 3 3 1
author Jane Smith
author-mail <jane@example.com>
author-time 1650000000
author-tz +0000
committer Jane Smith
committer-mail <jane@example.com>
committer-time 1650000000
committer-tz +0000
summary Add main
previous aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa main.go
filename main.go
	func main() {
aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 3 4 1
	}
`)

func TestParseBlame(t *testing.T) {
	bf, err := parseBlame("main.go", blameFixture)
	if err != nil {
		t.Fatalf("parseBlame failed: %v", err)
	}

	if bf.TotalLines() != 4 {
		t.Errorf("Expected 4 blamed lines, got %d", bf.TotalLines())
	}
	if got := bf.LineCounts["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"]; got != 3 {
		t.Errorf("Expected 3 lines for first commit, got %d", got)
	}
	if got := bf.LineCounts["bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"]; got != 1 {
		t.Errorf("Expected 1 line for second commit, got %d", got)
	}

	first := bf.Commits["aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"]
	if first.Author != "John Doe" || first.AuthorMail != "john@example.com" {
		t.Errorf("Unexpected metadata for first commit: %+v", first)
	}
	if first.Time.Unix() != 1600000000 {
		t.Errorf("Unexpected author time: %v", first.Time)
	}

	second := bf.Commits["bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"]
	if second.Author != "Jane Smith" {
		t.Errorf("Unexpected metadata for second commit: %+v", second)
	}
}

func TestParseBlameEmpty(t *testing.T) {
	bf, err := parseBlame("empty.go", nil)
	if err != nil {
		t.Fatalf("parseBlame failed: %v", err)
	}
	if bf.TotalLines() != 0 {
		t.Errorf("Expected empty blame for empty output, got %d lines", bf.TotalLines())
	}
}

func TestHeaderSHA(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 1 1 2", true},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 2 2", true},
		{"author John Doe", false},
		{"previous aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa main.go", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 1 x", false},
		{"boundary", false},
	}
	for _, tc := range cases {
		if _, ok := headerSHA(tc.line); ok != tc.want {
			t.Errorf("headerSHA(%q) = %v, want %v", tc.line, ok, tc.want)
		}
	}
}

func TestChangedPaths(t *testing.T) {
	unified := []byte(`diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,2 +1,3 @@
 package main
+
 func main() {}
diff --git a/old.py b/old.py
deleted file mode 100644
index 3333333..0000000
--- a/old.py
+++ /dev/null
@@ -1,2 +0,0 @@
-print("hi")
-print("bye")
diff --git a/new.rb b/new.rb
new file mode 100644
index 0000000..4444444
--- /dev/null
+++ b/new.rb
@@ -0,0 +1 @@
+puts "x"
`)

	paths, err := ChangedPaths(unified)
	if err != nil {
		t.Fatalf("ChangedPaths failed: %v", err)
	}

	want := []string{"main.go", "new.rb", "old.py"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %v", len(want), paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("Expected paths[%d] = %q, got %q", i, p, paths[i])
		}
	}
}

func TestChangedPathsEmpty(t *testing.T) {
	paths, err := ChangedPaths(nil)
	if err != nil {
		t.Fatalf("ChangedPaths failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no paths for empty diff, got %v", paths)
	}
}
