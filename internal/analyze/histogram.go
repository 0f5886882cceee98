package analyze

import (
	"encoding/json"
	"fmt"

	"strata/internal/gitcmd"
)

// Curve kinds. Each surviving line is attributed once per kind.
const (
	// KindCohort groups lines by the calendar period that wrote them
	KindCohort = "cohort"
	// KindExt groups lines by file extension
	KindExt = "ext"
	// KindAuthor groups lines by the author of the last touch
	KindAuthor = "author"
	// KindSHA tracks individual code commits for survival curves
	KindSHA = "sha"
)

// MissingCohort is the cohort for blamed commits that are not
// reachable from the analyzed branch.
const MissingCohort = "MISSING"

// Key identifies one curve: a kind plus its item label.
type Key struct {
	Kind string
	Item string
}

// Histogram counts surviving lines per curve key for one file (or,
// summed, for one commit's whole tree).
type Histogram map[Key]int

// blameRecord is the cached form of one file's blame: raw per-sha line
// counts plus author names from the blame metadata. Cohort, extension,
// and author attribution happen at read time, so a cached entry stays
// valid when a later run uses a different cohort format or branch.
type blameRecord struct {
	Lines   map[string]int    `json:"lines"`
	Authors map[string]string `json:"authors,omitempty"`
}

func newBlameRecord(bf *gitcmd.BlameFile) blameRecord {
	rec := blameRecord{Lines: bf.LineCounts}
	for sha, c := range bf.Commits {
		if c.Author == "" {
			continue
		}
		if rec.Authors == nil {
			rec.Authors = make(map[string]string)
		}
		rec.Authors[sha] = c.Author
	}
	return rec
}

// marshal serializes the record for the blame cache. encoding/json
// writes map keys sorted, so identical records produce identical
// payloads.
func (r blameRecord) marshal() ([]byte, error) {
	return json.Marshal(r)
}

// unmarshalRecord deserializes a cached payload. Payloads in an older
// layout fail here and are treated as cache misses by the caller.
func unmarshalRecord(data []byte) (blameRecord, error) {
	var r blameRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return blameRecord{}, err
	}
	if r.Lines == nil {
		return blameRecord{}, fmt.Errorf("blame record has no line counts")
	}
	return r, nil
}
