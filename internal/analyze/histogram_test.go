package analyze

import (
	"bytes"
	"testing"

	"strata/internal/gitcmd"
)

func TestBlameRecordRoundtrip(t *testing.T) {
	bf := &gitcmd.BlameFile{
		Path:       "main.go",
		LineCounts: map[string]int{"abc": 10, "def": 7},
		Commits: map[string]gitcmd.BlameCommit{
			"abc": {Author: "Ada"},
			"def": {},
		},
	}

	payload, err := newBlameRecord(bf).marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	got, err := unmarshalRecord(payload)
	if err != nil {
		t.Fatalf("unmarshalRecord failed: %v", err)
	}
	if got.Lines["abc"] != 10 || got.Lines["def"] != 7 {
		t.Errorf("Unexpected line counts: %v", got.Lines)
	}
	if got.Authors["abc"] != "Ada" {
		t.Errorf("Expected blame author to survive the roundtrip, got %v", got.Authors)
	}
	if _, ok := got.Authors["def"]; ok {
		t.Errorf("Expected empty author to be omitted, got %v", got.Authors)
	}
}

func TestBlameRecordDeterministic(t *testing.T) {
	rec := blameRecord{
		Lines:   map[string]int{"abc": 1, "def": 2, "aaa": 3},
		Authors: map[string]string{"abc": "Zed"},
	}

	a, err := rec.marshal()
	if err != nil {
		t.Fatal(err)
	}
	b, err := rec.marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Expected deterministic payloads, got %s vs %s", a, b)
	}
}

func TestUnmarshalRecordRejectsForeignPayload(t *testing.T) {
	for _, payload := range []string{`[{"kind":"cohort","item":"2019","count":3}]`, `{}`, `garbage`} {
		if _, err := unmarshalRecord([]byte(payload)); err == nil {
			t.Errorf("Expected error for payload %q", payload)
		}
	}
}

func TestCurveSetLateKeyZeroPrefix(t *testing.T) {
	c := newCurveSet()
	c.register(Key{Kind: KindCohort, Item: "2018"})

	c.observe(Histogram{{Kind: KindCohort, Item: "2018"}: 5})
	c.observe(Histogram{
		{Kind: KindCohort, Item: "2018"}: 4,
		{Kind: KindCohort, Item: "2019"}: 3,
	})

	curves := c.byKind(KindCohort)
	if got := curves["2018"]; got[0] != 5 || got[1] != 4 {
		t.Errorf("Unexpected 2018 curve: %v", got)
	}
	if got := curves["2019"]; got[0] != 0 || got[1] != 3 {
		t.Errorf("Expected zero prefix for late key, got %v", got)
	}
}

func TestCurveSetSkipsSHAKeys(t *testing.T) {
	c := newCurveSet()
	c.observe(Histogram{{Kind: KindSHA, Item: "abc"}: 5})

	if len(c.byKind(KindSHA)) != 0 {
		t.Errorf("Expected sha keys to be excluded from curves")
	}
}

func TestCurveSetRegisteredKeyAlwaysEmitted(t *testing.T) {
	c := newCurveSet()
	c.register(Key{Kind: KindAuthor, Item: "Merge Bot"})
	c.observe(Histogram{})

	curves := c.byKind(KindAuthor)
	got, ok := curves["Merge Bot"]
	if !ok || len(got) != 1 || got[0] != 0 {
		t.Errorf("Expected registered key to emit a zero curve, got %v", curves)
	}
}
