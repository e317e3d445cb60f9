package config

import (
	"vireon/internal/backend"
	"vireon/internal/engine"
	"vireon/internal/spec"
)

// Default solver, checker and run settings.
const (
	DefaultNumPaths           = 5
	DefaultTemperature        = 0.7
	DefaultTemperatureSpread  = 0.1
	DefaultOptionLetters      = "ABCDE"
	DefaultLatencyWeight      = 1.0
	DefaultVerifications      = 2
	DefaultCheckerTemperature = 0.1
	DefaultWorkers            = 4
	DefaultPathTimeoutSeconds = 120
)

// Default returns a config holding every default value. Loaders decode the
// file over it so absent keys keep their defaults.
func Default() spec.Config {
	engineDefaults := engine.DefaultConfig()
	return spec.Config{
		Version: 1,
		Backend: spec.BackendConfig{
			Provider:  string(backend.ProviderXAI),
			MaxTokens: backend.DefaultMaxTokens,
		},
		Engine: spec.EngineConfig{
			LambdaSmoothing:     engineDefaults.Lambda,
			DisagreementWeight:  engineDefaults.DisagreementWeight,
			ConfidenceThreshold: engineDefaults.Threshold,
			MinPathsQuorum:      engineDefaults.MinQuorum,
			Squash: spec.SquashConfig{
				Kind:      string(engineDefaults.Squash.Kind),
				Reference: engineDefaults.Squash.Reference,
				Steepness: engineDefaults.Squash.Steepness,
				Midpoint:  engineDefaults.Squash.Midpoint,
			},
		},
		Solver: spec.SolverConfig{
			NumPaths:          DefaultNumPaths,
			Temperature:       DefaultTemperature,
			TemperatureSpread: DefaultTemperatureSpread,
			OptionLetters:     DefaultOptionLetters,
			LatencyWeight:     DefaultLatencyWeight,
		},
		Checker: spec.CheckerConfig{
			Verifications: DefaultVerifications,
			Temperature:   DefaultCheckerTemperature,
		},
		Run: spec.RunConfig{
			Workers:            DefaultWorkers,
			PathTimeoutSeconds: DefaultPathTimeoutSeconds,
			OutputDir:          DefaultOutputDir,
		},
	}
}

// EngineConfig converts the engine section into engine settings.
func EngineConfig(cfg spec.Config) engine.Config {
	return engine.Config{
		Lambda:             cfg.Engine.LambdaSmoothing,
		DisagreementWeight: cfg.Engine.DisagreementWeight,
		Threshold:          cfg.Engine.ConfidenceThreshold,
		MinQuorum:          cfg.Engine.MinPathsQuorum,
		Squash: engine.SquashConfig{
			Kind:      engine.SquashKind(cfg.Engine.Squash.Kind),
			Reference: cfg.Engine.Squash.Reference,
			Steepness: cfg.Engine.Squash.Steepness,
			Midpoint:  cfg.Engine.Squash.Midpoint,
		},
	}
}

// BackendSettings builds backend settings, reading the API key from the
// environment variable named by backend.api_key_env.
func BackendSettings(cfg spec.Config, getenv func(string) string) backend.Settings {
	apiKey := ""
	if cfg.Backend.APIKeyEnv != "" && getenv != nil {
		apiKey = getenv(cfg.Backend.APIKeyEnv)
	}
	return backend.Settings{
		Provider:    backend.Provider(cfg.Backend.Provider),
		Model:       cfg.Backend.Model,
		BaseURL:     cfg.Backend.BaseURL,
		APIKey:      apiKey,
		MaxTokens:   cfg.Backend.MaxTokens,
		StubAnswer:  cfg.Backend.StubAnswer,
		StubVerdict: cfg.Backend.StubVerdict,
	}
}
