// Package solver produces the reasoning attempts and verification scores the
// engine aggregates.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"vireon/internal/backend"
	"vireon/internal/engine"
	"vireon/internal/prompt"
	"vireon/internal/question"
)

// Temperature bounds applied to staggered path temperatures.
const (
	MinTemperature = 0.1
	MaxTemperature = 1.0
)

// Attempt is one reasoning path's parsed answer.
type Attempt struct {
	RawText     string        `json:"raw_text"`
	Value       string        `json:"value"`
	Steps       int           `json:"steps"`
	Latency     time.Duration `json:"latency"`
	Temperature float64       `json:"temperature"`
}

// Solver produces a single reasoning attempt for a question.
type Solver interface {
	Solve(ctx context.Context, q question.Question, pathIndex int) (Attempt, error)
}

// SolverOptions tune an LLMSolver.
type SolverOptions struct {
	NumPaths          int
	Temperature       float64
	TemperatureSpread float64
	OptionLetters     string
	MaxTokens         int
}

// LLMSolver asks a backend model to reason and finish with "Answer: X".
type LLMSolver struct {
	model backend.Model
	opts  SolverOptions
}

// NewLLMSolver builds a solver over model.
func NewLLMSolver(model backend.Model, opts SolverOptions) *LLMSolver {
	return &LLMSolver{model: model, opts: opts}
}

// Solve runs path pathIndex at its staggered temperature. An answer that
// names no option letter is reported as engine.Unparseable, not as an error.
func (s *LLMSolver) Solve(ctx context.Context, q question.Question, pathIndex int) (Attempt, error) {
	letters := q.OptionLetters(s.opts.OptionLetters)
	userPrompt, err := prompt.RenderReasoning(q.Prompt, prompt.LabelOptions(q.Options, letters))
	if err != nil {
		return Attempt{}, err
	}
	temperature := PathTemperature(s.opts.Temperature, s.opts.TemperatureSpread, pathIndex, s.opts.NumPaths)
	resp, err := s.model.Complete(ctx, backend.Request{
		Purpose:     backend.PurposeSolve,
		System:      prompt.ReasoningSystem,
		User:        userPrompt,
		Temperature: temperature,
		MaxTokens:   s.opts.MaxTokens,
	})
	if err != nil {
		return Attempt{}, fmt.Errorf("solve %s path %d: %w", q.ID, pathIndex, err)
	}
	value, err := question.ExtractAnswerLetter(resp.Text, letters)
	if errors.Is(err, question.ErrUnparseable) {
		value = engine.Unparseable
	} else if err != nil {
		return Attempt{}, err
	}
	return Attempt{
		RawText:     resp.Text,
		Value:       value,
		Steps:       question.CountSteps(resp.Text),
		Latency:     resp.Latency,
		Temperature: temperature,
	}, nil
}

// PathTemperature staggers base around the middle path by spread per index,
// clamped to [MinTemperature, MaxTemperature].
func PathTemperature(base, spread float64, index, paths int) float64 {
	temperature := base + (float64(index)-float64(paths)/2)*spread
	return math.Max(MinTemperature, math.Min(MaxTemperature, temperature))
}

// InfoCost is the effort proxy ln(1+steps) plus weighted latency seconds.
func InfoCost(steps int, latency time.Duration, latencyWeight float64) float64 {
	if steps < 0 {
		steps = 0
	}
	return math.Log1p(float64(steps)) + latencyWeight*latency.Seconds()
}
