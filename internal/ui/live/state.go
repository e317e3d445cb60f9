package live

import (
	"time"

	"vireon/internal/runner"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index         int
	ID            string
	Text          string
	Status        runner.QuestionEventType
	PathsDone     int
	PathsFailed   int
	Value         string
	Confidence    float64
	Disagreement  float64
	Correct       *bool
	AbstainReason string
	StartedAt     time.Time
	FinishedAt    time.Time
	Error         string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Running   int
	Done      int
	Answered  int
	Abstained int
	Correct   int
	Incorrect int
	Skipped   int
}

// State captures the live UI state for an evaluation run.
type State struct {
	RunID       string
	Model       string
	Questions   int
	StartedAt   time.Time
	LastEvent   string
	Rows        []QuestionRow
	Counts      StatusCounts
	PathsDone   int
	PathsFailed int
	Summary     *runner.Summary
}
