package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vireon/internal/config"
)

func stubInitIO(t *testing.T, input, gitRoot string) {
	t.Helper()
	prevInput := initInput
	prevDiscover := discoverGitRoot
	initInput = strings.NewReader(input)
	discoverGitRoot = func(string) string { return gitRoot }
	t.Cleanup(func() {
		initInput = prevInput
		discoverGitRoot = prevDiscover
	})
}

// TestInitCommandCreatesFiles verifies init writes the config and example questions.
func TestInitCommandCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	stubInitIO(t, "", "")
	specPath := filepath.Join(dir, ".vireon", "config.yml")
	questionsPath := filepath.Join(dir, ".vireon", config.ExampleQuestionsFile)

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Wrote "+specPath) {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	if _, statErr := os.Stat(questionsPath); statErr != nil {
		t.Fatalf("expected questions file to exist: %v", statErr)
	}
	cfg, loadErr := config.Load(specPath)
	if loadErr != nil {
		t.Fatalf("scaffolded config does not load: %v", loadErr)
	}
	if cfg.Run.OutputDir != config.DefaultOutputDir {
		t.Fatalf("expected default output dir, got %q", cfg.Run.OutputDir)
	}
}

// TestInitCommandCustomOutputDirAndGitignore verifies prompted answers are applied.
func TestInitCommandCustomOutputDirAndGitignore(t *testing.T) {
	dir := t.TempDir()
	stubInitIO(t, "y\nruns\ny\n", dir)
	specPath := filepath.Join(dir, ".vireon", "config.yml")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	cfg, loadErr := config.Load(specPath)
	if loadErr != nil {
		t.Fatalf("load config: %v", loadErr)
	}
	if cfg.Run.OutputDir != "runs" {
		t.Fatalf("expected output dir runs, got %q", cfg.Run.OutputDir)
	}
	data, readErr := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if readErr != nil {
		t.Fatalf("read .gitignore: %v", readErr)
	}
	if strings.TrimSpace(string(data)) != "runs" {
		t.Fatalf("expected gitignore entry runs, got %q", string(data))
	}
}

// TestInitCommandCancelled verifies a declined prompt writes nothing.
func TestInitCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	stubInitIO(t, "n\n", "")
	specPath := filepath.Join(dir, ".vireon", "config.yml")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "cancelled") {
		t.Fatalf("expected cancellation message, got %q", err.String())
	}
	if _, statErr := os.Stat(specPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file, got %v", statErr)
	}
}

// TestInitCommandRefusesOverwrite verifies an existing config is left alone.
func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	stubInitIO(t, "", "")
	specPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(specPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", err.String())
	}
}
