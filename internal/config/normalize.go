package config

import (
	"strings"

	"vireon/internal/backend"
	"vireon/internal/spec"
)

var defaultAPIKeyEnv = map[backend.Provider]string{
	backend.ProviderOpenAI: "OPENAI_API_KEY",
	backend.ProviderXAI:    "XAI_API_KEY",
}

// Normalize trims strings and fills derived defaults.
func Normalize(cfg *spec.Config) {
	cfg.Backend.Provider = strings.ToLower(strings.TrimSpace(cfg.Backend.Provider))
	cfg.Backend.Model = strings.TrimSpace(cfg.Backend.Model)
	cfg.Backend.BaseURL = strings.TrimSpace(cfg.Backend.BaseURL)
	cfg.Backend.APIKeyEnv = strings.TrimSpace(cfg.Backend.APIKeyEnv)
	if cfg.Backend.APIKeyEnv == "" {
		cfg.Backend.APIKeyEnv = defaultAPIKeyEnv[backend.Provider(cfg.Backend.Provider)]
	}
	cfg.Backend.StubAnswer = strings.ToUpper(strings.TrimSpace(cfg.Backend.StubAnswer))
	cfg.Backend.StubVerdict = strings.ToUpper(strings.TrimSpace(cfg.Backend.StubVerdict))

	cfg.Engine.Squash.Kind = strings.ToLower(strings.TrimSpace(cfg.Engine.Squash.Kind))
	cfg.Solver.OptionLetters = strings.ToUpper(strings.TrimSpace(cfg.Solver.OptionLetters))
	if cfg.Solver.OptionLetters == "" {
		cfg.Solver.OptionLetters = DefaultOptionLetters
	}
	cfg.Run.OutputDir = strings.TrimSpace(cfg.Run.OutputDir)
	if cfg.Run.OutputDir == "" {
		cfg.Run.OutputDir = DefaultOutputDir
	}
}
