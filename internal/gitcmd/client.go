// Package gitcmd is a thin exec-based git client. Everything strata
// learns about a repository comes through here: commit listings, tree
// listings, diffs, and per-file blame.
package gitcmd

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"strata/internal/errors"
)

// Client runs git commands against a single repository.
type Client struct {
	// RepoRoot is the absolute path to the repository worktree root
	RepoRoot string
}

// NewClient creates a client for the repository at repoRoot.
func NewClient(repoRoot string) *Client {
	return &Client{RepoRoot: repoRoot}
}

// run executes git with the given arguments in the repository root.
// Stderr is captured and folded into the returned error.
func (c *Client) run(args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.RepoRoot

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return output, nil
}

// GitVersion returns the version string of the git binary.
func GitVersion() (string, error) {
	output, err := exec.Command("git", "--version").Output()
	if err != nil {
		return "", errors.New(errors.GitUnavailable, "git is not available", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ResolveRepoRoot finds the repository worktree root from a path.
func ResolveRepoRoot(startPath string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = startPath

	output, err := cmd.Output()
	if err != nil {
		return "", errors.New(errors.NotARepository,
			fmt.Sprintf("%s is not inside a git repository", startPath), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ResolveBranch resolves a branch name (or any revision) to a commit
// sha. An empty branch resolves HEAD.
func (c *Client) ResolveBranch(branch string) (string, error) {
	rev := branch
	if rev == "" {
		rev = "HEAD"
	}
	output, err := c.run("rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", errors.New(errors.BranchNotFound,
			fmt.Sprintf("cannot resolve %q to a commit", rev), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the symbolic name of HEAD, or the sha when
// HEAD is detached.
func (c *Client) CurrentBranch() (string, error) {
	output, err := c.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(output))
	if name == "HEAD" {
		return c.ResolveBranch("")
	}
	return name, nil
}
