package gitcmd

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Commit holds the commit metadata the analysis needs.
type Commit struct {
	SHA     string
	Time    time.Time
	Author  string
	Parents []string
}

// logFieldSep separates the pretty-format fields. The unit separator
// cannot appear in author names or shas.
const logFieldSep = "\x1f"

var logFormat = strings.Join([]string{"%H", "%ct", "%an", "%P"}, "%x1f")

// ListCommits returns every commit reachable from the given revision,
// newest first, with commit time, author name, and parent shas.
func (c *Client) ListCommits(rev string) ([]Commit, error) {
	output, err := c.run("log", "--pretty=tformat:"+logFormat, rev, "--")
	if err != nil {
		return nil, err
	}
	return parseCommits(output)
}

// parseCommits parses null-unit-separated git log output.
func parseCommits(output []byte) ([]Commit, error) {
	var commits []Commit

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, logFieldSep)
		if len(fields) != 4 {
			return nil, fmt.Errorf("malformed log line: %q", line)
		}

		ts, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed commit time in log line %q: %w", line, err)
		}

		commit := Commit{
			SHA:    fields[0],
			Time:   time.Unix(ts, 0).UTC(),
			Author: fields[2],
		}
		if fields[3] != "" {
			commit.Parents = strings.Fields(fields[3])
		}
		commits = append(commits, commit)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commits, nil
}
