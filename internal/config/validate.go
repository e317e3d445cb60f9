package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"vireon/internal/backend"
	"vireon/internal/engine"
	"vireon/internal/spec"
)

// Validate checks every section and returns a *ValidationError listing all
// problems found.
func Validate(cfg *spec.Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateBackend(cfg.Backend, collector)
	validateEngine(cfg, collector)
	validateSolver(cfg.Solver, collector)
	validateChecker(cfg.Checker, collector)
	validateRun(cfg.Run, collector)

	return collector.result()
}

func validateBackend(cfg spec.BackendConfig, collector *issueCollector) {
	provider, err := backend.ParseProvider(cfg.Provider)
	if cfg.Provider == "" {
		collector.add("backend.provider", "is required")
	} else if err != nil {
		collector.add("backend.provider", err.Error())
	}
	if cfg.MaxTokens < 0 {
		collector.add("backend.max_tokens", "must be >= 0")
	}
	if provider == backend.ProviderOpenAI || provider == backend.ProviderXAI {
		if cfg.APIKeyEnv == "" {
			collector.add("backend.api_key_env", "is required")
		}
	}
	if cfg.StubAnswer != "" && len(cfg.StubAnswer) != 1 {
		collector.add("backend.stub_answer", "must be a single letter")
	}
}

// validateEngine folds engine range checks into the collector.
func validateEngine(cfg *spec.Config, collector *issueCollector) {
	err := EngineConfig(*cfg).Validate()
	var configErr *engine.ConfigurationError
	if errors.As(err, &configErr) {
		for _, issue := range configErr.Issues {
			collector.add("engine."+issue.Field, issue.Message)
		}
	} else if err != nil {
		collector.add("engine", err.Error())
	}
	if cfg.Engine.MinPathsQuorum > cfg.Solver.NumPaths && cfg.Solver.NumPaths > 0 {
		collector.add("engine.min_paths_quorum", fmt.Sprintf("must not exceed solver.num_paths (%d)", cfg.Solver.NumPaths))
	}
}

func validateSolver(cfg spec.SolverConfig, collector *issueCollector) {
	if cfg.NumPaths < 1 {
		collector.add("solver.num_paths", "must be >= 1")
	}
	if !inRange(cfg.Temperature, 0, 2) {
		collector.add("solver.temperature", "must be within [0, 2]")
	}
	if !inRange(cfg.TemperatureSpread, 0, 1) {
		collector.add("solver.temperature_spread", "must be within [0, 1]")
	}
	if !finite(cfg.LatencyWeight) || cfg.LatencyWeight < 0 {
		collector.add("solver.latency_weight", "must be >= 0")
	}
	seen := map[rune]struct{}{}
	for _, letter := range cfg.OptionLetters {
		if letter < 'A' || letter > 'Z' {
			collector.add("solver.option_letters", fmt.Sprintf("invalid letter %q", letter))
			continue
		}
		if _, ok := seen[letter]; ok {
			collector.add("solver.option_letters", fmt.Sprintf("duplicate letter %q", letter))
		}
		seen[letter] = struct{}{}
	}
	if strings.TrimSpace(cfg.OptionLetters) == "" {
		collector.add("solver.option_letters", "is required")
	}
}

func validateChecker(cfg spec.CheckerConfig, collector *issueCollector) {
	if cfg.Verifications < 1 {
		collector.add("checker.verifications", "must be >= 1")
	}
	if !inRange(cfg.Temperature, 0, 2) {
		collector.add("checker.temperature", "must be within [0, 2]")
	}
}

func validateRun(cfg spec.RunConfig, collector *issueCollector) {
	if cfg.Workers < 1 {
		collector.add("run.workers", "must be >= 1")
	}
	if cfg.PathTimeoutSeconds < 1 {
		collector.add("run.path_timeout_seconds", "must be >= 1")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		collector.add("run.output_dir", "is required")
	}
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func inRange(value, low, high float64) bool {
	return finite(value) && value >= low && value <= high
}
