package gitcmd

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"time"

	"strata/internal/errors"
)

// BlameCommit is the metadata git blame reports for a blamed commit.
type BlameCommit struct {
	Author     string
	AuthorMail string
	Time       time.Time
}

// BlameFile holds per-commit surviving line counts for one file at one
// commit.
type BlameFile struct {
	Path string

	// LineCounts maps blamed commit sha to the number of surviving
	// lines it is responsible for
	LineCounts map[string]int

	// Commits holds metadata for every blamed commit, including ones
	// outside the analyzed branch
	Commits map[string]BlameCommit
}

// TotalLines returns the number of blamed lines in the file.
func (bf *BlameFile) TotalLines() int {
	total := 0
	for _, n := range bf.LineCounts {
		total += n
	}
	return total
}

// BlameFile runs git blame at a commit and aggregates surviving line
// counts per blamed commit. Fails for binary files.
func (c *Client) BlameFile(commit, path string) (*BlameFile, error) {
	output, err := c.run("blame", "--porcelain", commit, "--", path)
	if err != nil {
		return nil, errors.New(errors.BlameFailed,
			"git blame failed for "+path+" at "+shortSHA(commit), err)
	}
	return parseBlame(path, output)
}

// parseBlame parses git blame porcelain output.
//
// Every blamed line gets a "<sha> <origLine> <finalLine>" header;
// author fields follow the header only the first time a commit
// appears, so commit metadata is accumulated in a map keyed by sha.
func parseBlame(path string, output []byte) (*BlameFile, error) {
	bf := &BlameFile{
		Path:       path,
		LineCounts: make(map[string]int),
		Commits:    make(map[string]BlameCommit),
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	current := ""
	for scanner.Scan() {
		line := scanner.Text()

		// Content lines are tab-prefixed
		if strings.HasPrefix(line, "\t") {
			continue
		}

		if sha, ok := headerSHA(line); ok {
			current = sha
			bf.LineCounts[sha]++
			if _, exists := bf.Commits[sha]; !exists {
				bf.Commits[sha] = BlameCommit{}
			}
			continue
		}

		if current == "" {
			continue
		}
		meta := bf.Commits[current]
		switch {
		case strings.HasPrefix(line, "author "):
			meta.Author = strings.TrimPrefix(line, "author ")
		case strings.HasPrefix(line, "author-mail "):
			meta.AuthorMail = strings.Trim(strings.TrimPrefix(line, "author-mail "), "<>")
		case strings.HasPrefix(line, "author-time "):
			if ts, err := strconv.ParseInt(strings.TrimPrefix(line, "author-time "), 10, 64); err == nil {
				meta.Time = time.Unix(ts, 0).UTC()
			}
		default:
			continue
		}
		bf.Commits[current] = meta
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return bf, nil
}

// headerSHA recognizes a porcelain line-group header: a 40-char hex
// sha followed by original and final line numbers.
func headerSHA(line string) (string, bool) {
	if len(line) < 40 || !isHexString(line[:40]) {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 3 || len(fields) > 4 {
		return "", false
	}
	for _, f := range fields[1:] {
		if _, err := strconv.Atoi(f); err != nil {
			return "", false
		}
	}
	return fields[0], true
}

func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
