package gitcmd

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// TreeEntry is a single blob in a commit's tree.
type TreeEntry struct {
	Mode string
	SHA  string
	Size int64
	Path string
}

// ListTree returns all blob entries in the tree of a commit, including
// their sizes. Trees, submodule links, and symlink size placeholders
// are filtered out.
func (c *Client) ListTree(commit string) ([]TreeEntry, error) {
	output, err := c.run("ls-tree", "-r", "-l", "-z", commit)
	if err != nil {
		return nil, err
	}
	return parseTree(output)
}

// parseTree parses NUL-terminated `ls-tree -r -l -z` records of the
// form "<mode> <type> <sha> <size>\t<path>".
func parseTree(output []byte) ([]TreeEntry, error) {
	var entries []TreeEntry

	for _, record := range bytes.Split(output, []byte{0}) {
		if len(record) == 0 {
			continue
		}
		tab := bytes.IndexByte(record, '\t')
		if tab < 0 {
			return nil, fmt.Errorf("malformed ls-tree record: %q", record)
		}

		meta := strings.Fields(string(record[:tab]))
		if len(meta) != 4 {
			return nil, fmt.Errorf("malformed ls-tree record: %q", record)
		}
		if meta[1] != "blob" {
			continue
		}

		size := int64(0)
		if meta[3] != "-" {
			parsed, err := strconv.ParseInt(meta[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed blob size in record %q: %w", record, err)
			}
			size = parsed
		}

		entries = append(entries, TreeEntry{
			Mode: meta[0],
			SHA:  meta[2],
			Size: size,
			Path: string(record[tab+1:]),
		})
	}
	return entries, nil
}
