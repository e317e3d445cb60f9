package engine

// Calibration is the calibrator's choice of winner and its confidence.
type Calibration struct {
	Winner     CandidateStats
	HasWinner  bool
	Confidence float64
}

// Calibrator turns ranked raw scores into a confidence in [0, 1].
type Calibrator struct {
	squasher Squasher
	weight   float64
}

// NewCalibrator builds a calibrator from a squashing strategy and the
// disagreement penalty weight.
func NewCalibrator(squasher Squasher, disagreementWeight float64) Calibrator {
	return Calibrator{squasher: squasher, weight: disagreementWeight}
}

// Calibrate selects the first ranked candidate and penalizes its squashed
// score by disagreement.
func (c Calibrator) Calibrate(ranked []CandidateStats, disagreement float64) Calibration {
	if len(ranked) == 0 {
		return Calibration{}
	}
	winner := ranked[0]
	penalty := 1 - c.weight*clamp01(disagreement)
	confidence := clamp01(c.squasher.Squash(winner.RawScore) * penalty)
	return Calibration{Winner: winner, HasWinner: true, Confidence: confidence}
}
