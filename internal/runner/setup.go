package runner

import (
	"fmt"
	"time"

	"vireon/internal/backend"
	"vireon/internal/config"
	"vireon/internal/engine"
	"vireon/internal/solver"
	"vireon/internal/spec"
)

// ParamsFromConfig builds run parameters with an LLM solver and checker over
// model and an engine built from cfg's engine section.
func ParamsFromConfig(cfg spec.Config, model backend.Model) (RunParams, error) {
	if model == nil {
		return RunParams{}, fmt.Errorf("model is required")
	}
	eng, err := engine.New(config.EngineConfig(cfg))
	if err != nil {
		return RunParams{}, err
	}
	return RunParams{
		Provider:      cfg.Backend.Provider,
		Model:         model.Name(),
		NumPaths:      cfg.Solver.NumPaths,
		Workers:       cfg.Run.Workers,
		PathTimeout:   time.Duration(cfg.Run.PathTimeoutSeconds) * time.Second,
		LatencyWeight: cfg.Solver.LatencyWeight,
		Deps: RunDependencies{
			Solver: solver.NewLLMSolver(model, solver.SolverOptions{
				NumPaths:          cfg.Solver.NumPaths,
				Temperature:       cfg.Solver.Temperature,
				TemperatureSpread: cfg.Solver.TemperatureSpread,
				OptionLetters:     cfg.Solver.OptionLetters,
				MaxTokens:         cfg.Backend.MaxTokens,
			}),
			Checker: solver.NewLLMChecker(model, solver.CheckerOptions{
				Verifications: cfg.Checker.Verifications,
				Temperature:   cfg.Checker.Temperature,
				OptionLetters: cfg.Solver.OptionLetters,
				MaxTokens:     cfg.Backend.MaxTokens,
			}),
			Engine: eng,
		},
	}, nil
}
