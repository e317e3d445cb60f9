package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vireon/internal/engine"
	"vireon/internal/question"
)

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadFillsDefaults verifies absent keys keep their defaults.
func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nbackend:\n  provider: STUB\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.Provider != "stub" {
		t.Fatalf("expected provider to be normalized, got %q", cfg.Backend.Provider)
	}
	if cfg.Solver.NumPaths != DefaultNumPaths || cfg.Checker.Verifications != DefaultVerifications {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if EngineConfig(cfg) != engine.DefaultConfig() {
		t.Fatalf("expected engine defaults, got %+v", EngineConfig(cfg))
	}
	if cfg.Run.OutputDir != DefaultOutputDir {
		t.Fatalf("unexpected output dir %q", cfg.Run.OutputDir)
	}
}

func TestLoadExplicitZeroWeight(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "version: 1\nbackend:\n  provider: stub\nengine:\n  disagreement_weight: 0\n  min_paths_quorum: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.DisagreementWeight != 0 || cfg.Engine.MinPathsQuorum != 0 {
		t.Fatalf("expected explicit zeros to survive, got %+v", cfg.Engine)
	}
}

func TestNormalizeAPIKeyEnv(t *testing.T) {
	cfg := Default()
	cfg.Backend.Provider = " OpenAI "
	Normalize(&cfg)
	if cfg.Backend.Provider != "openai" || cfg.Backend.APIKeyEnv != "OPENAI_API_KEY" {
		t.Fatalf("unexpected backend config: %+v", cfg.Backend)
	}
}

// TestValidateCollectsEngineIssues verifies engine range errors surface as config issues.
func TestValidateCollectsEngineIssues(t *testing.T) {
	cfg := Default()
	cfg.Engine.LambdaSmoothing = 0
	cfg.Engine.ConfidenceThreshold = 1.5
	cfg.Engine.Squash.Kind = "cubic"
	cfg.Engine.MinPathsQuorum = 9

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"engine.lambda_smoothing", "engine.confidence_threshold", "engine.squash", "engine.min_paths_quorum"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %v", want, validationErr.Issues)
		}
	}
}

func TestValidateSections(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	cfg.Backend.Provider = "anthropic"
	cfg.Solver.NumPaths = 0
	cfg.Solver.OptionLetters = "AA1"
	cfg.Checker.Verifications = 0
	cfg.Run.Workers = 0
	cfg.Run.PathTimeoutSeconds = 0
	cfg.Run.OutputDir = " "

	err := Validate(&cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{
		"version: unsupported version 2",
		"backend.provider",
		"solver.num_paths",
		"duplicate letter",
		"invalid letter",
		"checker.verifications",
		"run.workers",
		"run.path_timeout_seconds",
		"run.output_dir",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidateDefaultIsValid(t *testing.T) {
	cfg := Default()
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestFindConfigPathWalksUp verifies discovery from a nested directory.
func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if RootFromConfigPath(got) != root {
		t.Fatalf("unexpected root %q", RootFromConfigPath(got))
	}
}

// TestFindConfigPathMissingFile verifies a bare .vireon directory is reported.
func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindConfigPath(root); err == nil || !strings.Contains(err.Error(), "is missing") {
		t.Fatalf("expected missing config error, got %v", err)
	}
}

// TestFindConfigPathNotFound verifies the sentinel when no ancestor has a config.
func TestFindConfigPathNotFound(t *testing.T) {
	if _, err := FindConfigPath(t.TempDir()); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

// TestResolveOutputDir verifies relative dirs are anchored and absolute ones kept.
func TestResolveOutputDir(t *testing.T) {
	root := t.TempDir()
	if got := ResolveOutputDir(root, "out"); got != filepath.Join(root, "out") {
		t.Fatalf("unexpected relative resolution %q", got)
	}
	abs := filepath.Join(root, "elsewhere")
	if got := ResolveOutputDir("/ignored", abs); got != abs {
		t.Fatalf("unexpected absolute resolution %q", got)
	}
	if got := RootFromConfigPath(filepath.Join(root, "custom.yml")); got != root {
		t.Fatalf("unexpected root for custom config %q", got)
	}
}

// TestScaffoldWritesLoadableFiles verifies the scaffold round-trips through Load.
func TestScaffoldWritesLoadableFiles(t *testing.T) {
	root := t.TempDir()
	written, err := Scaffold(ConfigPath(root), "")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected two files, got %v", written)
	}
	cfg, err := Load(written[0])
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Backend.Provider != "xai" || cfg.Backend.APIKeyEnv != "XAI_API_KEY" {
		t.Fatalf("unexpected backend: %+v", cfg.Backend)
	}
	questions, err := question.LoadFile(written[1])
	if err != nil {
		t.Fatalf("load example questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 example questions, got %d", len(questions))
	}
	if cfg.Run.OutputDir != DefaultOutputDir {
		t.Fatalf("expected default output dir, got %q", cfg.Run.OutputDir)
	}
	if _, err := Scaffold(ConfigPath(root), ""); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
}

// TestScaffoldCustomOutputDir verifies a chosen results folder is written into the config.
func TestScaffoldCustomOutputDir(t *testing.T) {
	root := t.TempDir()
	written, err := Scaffold(ConfigPath(root), "out/runs")
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(written[0])
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Run.OutputDir != "out/runs" {
		t.Fatalf("expected out/runs, got %q", cfg.Run.OutputDir)
	}
}

func TestBackendSettingsReadsKey(t *testing.T) {
	cfg := Default()
	Normalize(&cfg)
	settings := BackendSettings(cfg, func(name string) string {
		if name == "XAI_API_KEY" {
			return "secret"
		}
		return ""
	})
	if settings.APIKey != "secret" || settings.Provider != "xai" || settings.MaxTokens != 4096 {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}
