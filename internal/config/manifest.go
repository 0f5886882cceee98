package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"strata/internal/errors"
)

// ManifestName is the per-repository analysis manifest file name.
const ManifestName = "strata.toml"

// Manifest is the optional per-repository analysis manifest, checked
// in at the repository root. It pins analysis settings so everyone
// running strata on the repo gets the same series.
type Manifest struct {
	Branch          string   `toml:"branch"`
	CohortFormat    string   `toml:"cohort_format"`
	IntervalSeconds int64    `toml:"interval_seconds"`
	Ignore          []string `toml:"ignore"`
	Only            []string `toml:"only"`
	AllFiletypes    bool     `toml:"all_filetypes"`
}

// LoadManifest reads strata.toml from the repository root. Returns
// (nil, nil) when the repository has no manifest.
func LoadManifest(repoRoot string) (*Manifest, error) {
	path := filepath.Join(repoRoot, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "failed to parse "+ManifestName, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ConfigInvalid,
			"unknown key "+undecoded[0].String()+" in "+ManifestName, nil)
	}
	if m.IntervalSeconds < 0 {
		return nil, errors.New(errors.ConfigInvalid,
			"interval_seconds must not be negative in "+ManifestName, nil)
	}
	return &m, nil
}
