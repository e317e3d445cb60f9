// Package engine aggregates the reasoning paths produced for one question
// into a single calibrated answer or an explicit abstention.
//
// The pipeline is Accumulate -> Disagreement -> Score -> Calibrate -> Gate.
// Every stage is a pure function of its inputs; an Engine may be shared by
// goroutines evaluating different questions.
package engine

// Engine evaluates path outcomes with a fixed, validated configuration.
type Engine struct {
	cfg        Config
	calibrator Calibrator
}

// New validates cfg and builds an Engine. It returns a *ConfigurationError
// when any setting is out of range. The stored squash kind is canonical.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Squash = cfg.Squash.Canonical()
	squasher, err := NewSquasher(cfg.Squash)
	if err != nil {
		return nil, &ConfigurationError{Issues: []Issue{{Field: "squash", Message: err.Error()}}}
	}
	return &Engine{
		cfg:        cfg,
		calibrator: NewCalibrator(squasher, cfg.DisagreementWeight),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate aggregates outcomes into an EvaluationResult. It never fails: an
// empty or all-failed set yields an abstention with zero confidence.
func (e *Engine) Evaluate(outcomes []PathOutcome) EvaluationResult {
	acc := Accumulate(outcomes)
	disagreement := Disagreement(acc.Candidates)
	ranked := Score(acc.Candidates, e.cfg.Lambda)
	calibration := e.calibrator.Calibrate(ranked, disagreement)
	decision := Gate(calibration, acc.SucceededCount, e.cfg.MinQuorum, e.cfg.Threshold)

	return EvaluationResult{
		SelectedValue:  decision.SelectedValue,
		Confidence:     calibration.Confidence,
		Candidates:     ranked,
		Disagreement:   disagreement,
		Abstained:      decision.Abstained,
		AbstainReason:  decision.Reason,
		SucceededCount: acc.SucceededCount,
		FailedCount:    acc.FailedCount,
	}
}
