package engine

// Unparseable marks a path whose answer could not be mapped to a candidate.
const Unparseable = "UNPARSEABLE"

// Abstain is the selected value reported when the engine declines to answer.
const Abstain = "ABSTAIN"

// PathOutcome is the result of one reasoning attempt for a question.
type PathOutcome struct {
	Value             string  `json:"value"`
	VerificationScore float64 `json:"verification_score"`
	InfoCost          float64 `json:"info_cost"`
	Succeeded         bool    `json:"succeeded"`
}

// CandidateStats summarizes the succeeded paths that voted for one value.
type CandidateStats struct {
	Value            string  `json:"value"`
	VoteFraction     float64 `json:"vote_fraction"`
	MeanVerification float64 `json:"mean_verification"`
	MeanInfoCost     float64 `json:"mean_info_cost"`
	SupportCount     int     `json:"support_count"`
	RawScore         float64 `json:"raw_score"`
}

// AbstainReason explains why a result abstained.
type AbstainReason string

const (
	ReasonNone               AbstainReason = ""
	ReasonNoCandidates       AbstainReason = "no_candidates"
	ReasonInsufficientQuorum AbstainReason = "insufficient_quorum"
	ReasonBelowThreshold     AbstainReason = "below_threshold"
)

// EvaluationResult is the calibrated decision for a single question.
type EvaluationResult struct {
	SelectedValue  string           `json:"selected_value"`
	Confidence     float64          `json:"confidence"`
	Candidates     []CandidateStats `json:"candidates"`
	Disagreement   float64          `json:"disagreement"`
	Abstained      bool             `json:"abstained"`
	AbstainReason  AbstainReason    `json:"abstain_reason,omitempty"`
	SucceededCount int              `json:"succeeded_count"`
	FailedCount    int              `json:"failed_count"`
}

// Winner returns the top-ranked candidate, if any.
func (r EvaluationResult) Winner() (CandidateStats, bool) {
	if len(r.Candidates) == 0 {
		return CandidateStats{}, false
	}
	return r.Candidates[0], true
}
