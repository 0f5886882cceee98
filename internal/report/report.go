// Package report holds the output data model for an analysis run and
// writes it to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Series is one emitted curve family: a value per sampled commit for
// every label, plus the commit timestamps. This is the shape the plot
// commands consume.
type Series struct {
	Y      [][]int  `json:"y"`
	Ts     []string `json:"ts"`
	Labels []string `json:"labels"`
}

// SurvivalPoint is one (unix timestamp, surviving line count) sample.
type SurvivalPoint [2]int64

// Survival maps a commit sha to its surviving-line series across the
// sampled commits that came after it.
type Survival map[string][]SurvivalPoint

// Manifest describes a completed analysis run.
type Manifest struct {
	RunID           string   `json:"runId"`
	Repo            string   `json:"repo"`
	Branch          string   `json:"branch"`
	Head            string   `json:"head"`
	CohortFormat    string   `json:"cohortFormat"`
	IntervalSeconds int64    `json:"intervalSeconds"`
	Ignore          []string `json:"ignore,omitempty"`
	Only            []string `json:"only,omitempty"`
	AllFiletypes    bool     `json:"allFiletypes"`
	CommitsTotal    int      `json:"commitsTotal"`
	CommitsSampled  int      `json:"commitsSampled"`
	FilesBlamed     int      `json:"filesBlamed"`
	CacheHits       int      `json:"cacheHits"`
	StartedAt       string   `json:"startedAt"`
	FinishedAt      string   `json:"finishedAt"`
	DurationMs      int64    `json:"durationMs"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// BuildSeries assembles a Series from per-label curves. Labels are
// sorted, short curves are zero-padded on the left (a label that first
// appeared mid-walk had zero lines before that), and labelFn renders
// the display label.
func BuildSeries(curves map[string][]int, ts []time.Time, labelFn func(string) string) *Series {
	labels := make([]string, 0, len(curves))
	for label := range curves {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if labelFn == nil {
		labelFn = func(s string) string { return s }
	}

	s := &Series{
		Y:      make([][]int, 0, len(labels)),
		Ts:     make([]string, 0, len(ts)),
		Labels: make([]string, 0, len(labels)),
	}
	for _, t := range ts {
		s.Ts = append(s.Ts, t.UTC().Format(time.RFC3339))
	}
	for _, label := range labels {
		curve := curves[label]
		if len(curve) < len(ts) {
			padded := make([]int, len(ts))
			copy(padded[len(ts)-len(curve):], curve)
			curve = padded
		}
		s.Y = append(s.Y, curve)
		s.Labels = append(s.Labels, labelFn(label))
	}
	return s
}

// WriteJSON writes v as JSON to path, creating parent directories.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSeries loads a Series from a JSON file.
func ReadSeries(path string) (*Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Series
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse series file %s: %w", path, err)
	}
	if len(s.Y) != len(s.Labels) {
		return nil, fmt.Errorf("series file %s has %d curves but %d labels", path, len(s.Y), len(s.Labels))
	}
	return &s, nil
}

// ReadSurvival loads a Survival map from a JSON file.
func ReadSurvival(path string) (Survival, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Survival
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse survival file %s: %w", path, err)
	}
	return s, nil
}
