package engine

// Decision is the outcome of the abstention gate.
type Decision struct {
	SelectedValue string
	Abstained     bool
	Reason        AbstainReason
}

// Gate decides between answering and abstaining.
func Gate(calibration Calibration, succeeded, minQuorum int, threshold float64) Decision {
	switch {
	case !calibration.HasWinner:
		return Decision{SelectedValue: Abstain, Abstained: true, Reason: ReasonNoCandidates}
	case succeeded < minQuorum:
		return Decision{SelectedValue: Abstain, Abstained: true, Reason: ReasonInsufficientQuorum}
	case calibration.Confidence < threshold:
		return Decision{SelectedValue: Abstain, Abstained: true, Reason: ReasonBelowThreshold}
	default:
		return Decision{SelectedValue: calibration.Winner.Value}
	}
}
