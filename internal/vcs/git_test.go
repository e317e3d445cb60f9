package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"vireon/internal/testutil"
)

// TestFileProvenance verifies repo discovery and provenance parsing.
func TestFileProvenance(t *testing.T) {
	ctx := testutil.Context(t)
	root := filepath.Join(t.TempDir(), "repo")
	file := filepath.Join(root, "data", "questions.jsonl")

	fake := &fakeGit{responses: map[string]string{
		"rev-parse --show-toplevel":   root,
		"rev-parse HEAD":              "commit-3",
		"rev-parse --abbrev-ref HEAD": "main",
		"status --porcelain -- " + file: "",
	}}
	client := NewClient(fake.run)

	actualRoot, err := client.DiscoverRepoRoot(ctx, filepath.Dir(file))
	if err != nil {
		t.Fatalf("discover repo root: %v", err)
	}
	if actualRoot != root {
		t.Fatalf("expected root %q, got %q", root, actualRoot)
	}

	prov, err := client.FileProvenance(ctx, file)
	if err != nil {
		t.Fatalf("provenance: %v", err)
	}
	if prov.Commit != "commit-3" || prov.Branch != "main" || prov.Root != root {
		t.Fatalf("unexpected provenance: %+v", prov)
	}
	if prov.Dirty {
		t.Fatalf("expected clean file, got dirty")
	}

	fake.responses["status --porcelain -- "+file] = " M data/questions.jsonl"
	fake.responses["rev-parse --abbrev-ref HEAD"] = "HEAD"
	prov, err = client.FileProvenance(ctx, file)
	if err != nil {
		t.Fatalf("provenance dirty: %v", err)
	}
	if !prov.Dirty {
		t.Fatalf("expected dirty file")
	}
	if prov.Branch != "" {
		t.Fatalf("expected detached head to clear branch, got %q", prov.Branch)
	}
}

// TestFileProvenanceOutsideRepo verifies discovery errors are returned.
func TestFileProvenanceOutsideRepo(t *testing.T) {
	ctx := testutil.Context(t)
	client := NewClient((&fakeGit{responses: map[string]string{}}).run)
	if _, err := client.FileProvenance(ctx, "/tmp/questions.jsonl"); err == nil {
		t.Fatalf("expected error outside a repository")
	}
	if _, err := client.FileProvenance(ctx, " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

// TestFileProvenanceRealRepository verifies provenance against an actual git work tree.
func TestFileProvenanceRealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	ctx := testutil.Context(t)
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	git := func(args ...string) {
		t.Helper()
		if _, err := Git(ctx, dir, args...); err != nil {
			t.Fatalf("%v", err)
		}
	}
	file := filepath.Join(dir, "questions.jsonl")
	if err := os.WriteFile(file, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	git("init", "-q", "-b", "main")
	git("add", "questions.jsonl")
	git("-c", "user.name=vireon", "-c", "user.email=vireon@example.com", "-c", "commit.gpgsign=false", "commit", "-q", "-m", "questions")

	prov, err := FileProvenance(ctx, file)
	if err != nil {
		t.Fatalf("provenance: %v", err)
	}
	if prov.Root != dir || prov.Branch != "main" || len(prov.Commit) != 40 || prov.Dirty {
		t.Fatalf("unexpected provenance: %+v", prov)
	}

	if err := os.WriteFile(file, []byte("{}\n{}\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if prov, err = FileProvenance(ctx, file); err != nil || !prov.Dirty {
		t.Fatalf("expected dirty provenance, got %+v (%v)", prov, err)
	}
}

// fakeGit answers git invocations from a table keyed by the joined args.
type fakeGit struct {
	responses map[string]string
}

func (f *fakeGit) run(_ context.Context, _ string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if value, ok := f.responses[key]; ok {
		return value, nil
	}
	return "", fmt.Errorf("unexpected git args: %s", key)
}
