package pathfilter

import (
	"testing"
)

func TestDefaultFiletypes(t *testing.T) {
	f := New(Options{})

	included := []string{
		"main.go",
		"src/lib/parser.py",
		"deep/nested/dir/Widget.java",
		"Makefile",
		"schema.sql",
	}
	for _, p := range included {
		if !f.Match(p) {
			t.Errorf("Expected %q to match default filetypes", p)
		}
	}

	excluded := []string{
		"README.md",
		"package.json",
		"config.yaml",
		"notes.txt",
		"diagram.xml",
	}
	for _, p := range excluded {
		if f.Match(p) {
			t.Errorf("Expected %q to be excluded by default", p)
		}
	}
}

func TestAllFiletypes(t *testing.T) {
	f := New(Options{AllFiletypes: true})

	if !f.Match("README.md") {
		t.Errorf("Expected README.md to match with AllFiletypes")
	}
}

func TestIgnorePatternsCrossDirectories(t *testing.T) {
	f := New(Options{Ignore: []string{"*test*", "vendor/*"}})

	if f.Match("internal/foo/bar_test.go") {
		t.Errorf("Expected *test* to exclude nested test files")
	}
	if f.Match("vendor/lib/dep.go") {
		t.Errorf("Expected vendor/* to exclude vendored files")
	}
	if !f.Match("internal/foo/bar.go") {
		t.Errorf("Expected non-test file to be included")
	}
}

func TestOnlyPatternsAllRequired(t *testing.T) {
	f := New(Options{Only: []string{"src/*", "*.go"}})

	if !f.Match("src/pkg/main.go") {
		t.Errorf("Expected path matching all only-patterns to be included")
	}
	if f.Match("src/pkg/main.py") {
		t.Errorf("Expected path failing one only-pattern to be excluded")
	}
	if f.Match("cmd/main.go") {
		t.Errorf("Expected path outside src/ to be excluded")
	}
}

func TestCharacterClass(t *testing.T) {
	f := New(Options{AllFiletypes: true, Ignore: []string{"*.[oa]"}})

	if f.Match("build/thing.o") || f.Match("build/lib.a") {
		t.Errorf("Expected object files to be ignored")
	}
	if !f.Match("build/thing.c") {
		t.Errorf("Expected source file to be included")
	}
}

func TestVerdictMemoized(t *testing.T) {
	f := New(Options{})
	f.Match("main.go")
	if _, ok := f.verdicts["main.go"]; !ok {
		t.Errorf("Expected verdict to be cached")
	}
}
