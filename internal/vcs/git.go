// Package vcs reads git provenance for the files a run depends on.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Provenance pins a file to the repository state it was read from.
type Provenance struct {
	Root   string `json:"root"`
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// GitFunc runs git with args in dir and returns trimmed stdout.
type GitFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Git shells out to the git binary on PATH.
func Git(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client answers repository questions through a GitFunc.
type Client struct {
	git GitFunc
}

// NewClient returns a Client using git, or the git binary when git is nil.
func NewClient(git GitFunc) Client {
	if git == nil {
		git = Git
	}
	return Client{git: git}
}

// DiscoverRepoRoot returns the work tree root containing startDir, or the
// working directory when startDir is empty.
func DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	return NewClient(nil).DiscoverRepoRoot(ctx, startDir)
}

// FileProvenance describes the repository state of the file at path.
func FileProvenance(ctx context.Context, path string) (Provenance, error) {
	return NewClient(nil).FileProvenance(ctx, path)
}

// DiscoverRepoRoot returns the work tree root containing startDir.
func (c Client) DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	root, err := c.git(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("discover git root: %w", err)
	}
	return root, nil
}

// FileProvenance resolves the repository holding path, its HEAD commit and
// branch, and whether path has uncommitted changes. A detached HEAD leaves
// Branch empty.
func (c Client) FileProvenance(ctx context.Context, path string) (Provenance, error) {
	if strings.TrimSpace(path) == "" {
		return Provenance{}, errors.New("path is empty")
	}
	root, err := c.DiscoverRepoRoot(ctx, filepath.Dir(path))
	if err != nil {
		return Provenance{}, err
	}
	prov := Provenance{Root: root}
	queries := []struct {
		what string
		args []string
		into func(string)
	}{
		{"resolve HEAD", []string{"rev-parse", "HEAD"}, func(out string) { prov.Commit = out }},
		{"resolve branch", []string{"rev-parse", "--abbrev-ref", "HEAD"}, func(out string) {
			if out != "HEAD" {
				prov.Branch = out
			}
		}},
		{"check dirty state", []string{"status", "--porcelain", "--", path}, func(out string) { prov.Dirty = out != "" }},
	}
	for _, q := range queries {
		out, err := c.git(ctx, root, q.args...)
		if err != nil {
			return Provenance{}, fmt.Errorf("%s: %w", q.what, err)
		}
		q.into(strings.TrimSpace(out))
	}
	return prov, nil
}
