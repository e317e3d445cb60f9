package runner

import (
	"time"

	"vireon/internal/engine"
	"vireon/internal/vcs"
)

// Results is the full record of one evaluation run, written as results.json.
type Results struct {
	RunID         string           `json:"run_id"`
	Provider      string           `json:"provider"`
	Model         string           `json:"model"`
	QuestionsFile string           `json:"questions_file,omitempty"`
	Source        *vcs.Provenance  `json:"source,omitempty"`
	StartedAt     time.Time        `json:"started_at"`
	FinishedAt    time.Time        `json:"finished_at"`
	Settings      Settings         `json:"settings"`
	Interrupted   bool             `json:"interrupted,omitempty"`
	Questions     []QuestionResult `json:"questions"`
	Summary       Summary          `json:"summary"`
}

// Settings snapshots the knobs that shaped a run.
type Settings struct {
	NumPaths            int     `json:"num_paths"`
	Workers             int     `json:"workers"`
	PathTimeoutSeconds  float64 `json:"path_timeout_seconds"`
	LatencyWeight       float64 `json:"latency_weight"`
	LambdaSmoothing     float64 `json:"lambda_smoothing"`
	DisagreementWeight  float64 `json:"disagreement_weight"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	MinPathsQuorum      int     `json:"min_paths_quorum"`
	SquashKind          string  `json:"squash_kind"`
}

// QuestionResult is the calibrated decision for one question plus the paths
// that produced it.
type QuestionResult struct {
	ID             string                  `json:"id"`
	Question       string                  `json:"question"`
	Category       string                  `json:"category,omitempty"`
	GroundTruth    string                  `json:"ground_truth,omitempty"`
	SelectedValue  string                  `json:"selected_value"`
	Confidence     float64                 `json:"confidence"`
	Disagreement   float64                 `json:"disagreement"`
	Abstained      bool                    `json:"abstained"`
	AbstainReason  engine.AbstainReason    `json:"abstain_reason,omitempty"`
	Correct        *bool                   `json:"correct,omitempty"`
	SucceededCount int                     `json:"succeeded_count"`
	FailedCount    int                     `json:"failed_count"`
	Candidates     []engine.CandidateStats `json:"candidates"`
	Paths          []PathResult            `json:"paths"`
	WallTimeSecs   float64                 `json:"wall_time_seconds"`
}

// PathResult records one reasoning path.
type PathResult struct {
	Index             int     `json:"index"`
	Succeeded         bool    `json:"succeeded"`
	Value             string  `json:"value,omitempty"`
	VerificationScore float64 `json:"verification_score"`
	InfoCost          float64 `json:"info_cost"`
	Steps             int     `json:"steps"`
	LatencySeconds    float64 `json:"latency_seconds"`
	Temperature       float64 `json:"temperature"`
	Response          string  `json:"response,omitempty"`
	Error             string  `json:"error,omitempty"`
}

// Outcome converts the path into the engine's input form.
func (p PathResult) Outcome() engine.PathOutcome {
	return engine.PathOutcome{
		Value:             p.Value,
		VerificationScore: p.VerificationScore,
		InfoCost:          p.InfoCost,
		Succeeded:         p.Succeeded,
	}
}

// Summary aggregates a run across questions.
type Summary struct {
	QuestionsTotal    int            `json:"questions_total"`
	Answered          int            `json:"answered"`
	Abstained         int            `json:"abstained"`
	Graded            int            `json:"graded"`
	Correct           int            `json:"correct"`
	Incorrect         int            `json:"incorrect"`
	Accuracy          float64        `json:"accuracy"`
	SelectiveAccuracy float64        `json:"selective_accuracy"`
	Coverage          float64        `json:"coverage"`
	ECE               float64        `json:"ece"`
	MeanConfidence    float64        `json:"mean_confidence"`
	MeanDisagreement  float64        `json:"mean_disagreement"`
	PathsFailed       int            `json:"paths_failed"`
	AbstainReasons    map[string]int `json:"abstain_reasons,omitempty"`
}
