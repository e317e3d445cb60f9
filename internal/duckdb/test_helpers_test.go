package duckdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"vireon/internal/duckdb/testing"
	"vireon/internal/engine"
	"vireon/internal/runner"
	"vireon/internal/testutil"
)

// openTestDB opens an in-memory DuckDB instance with the schema applied.
func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t)
	return duckdbtesting.OpenMemory(t), ctx
}

// queryInt returns a single integer value from the database.
func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}

func boolPtr(value bool) *bool {
	return &value
}

// sampleResults builds a two-question run: one answered correctly, one abstained.
func sampleResults(runID string, started time.Time) runner.Results {
	return runner.Results{
		RunID:      runID,
		Provider:   "stub",
		Model:      "stub",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Settings:   runner.Settings{NumPaths: 2, Workers: 2, SquashKind: "linear"},
		Questions: []runner.QuestionResult{
			{
				ID:             "q1",
				Question:       "2+2?",
				Category:       "math",
				GroundTruth:    "B",
				SelectedValue:  "B",
				Confidence:     0.8,
				Correct:        boolPtr(true),
				SucceededCount: 2,
				Candidates: []engine.CandidateStats{
					{Value: "B", VoteFraction: 1, MeanVerification: 1, MeanInfoCost: 0.5, SupportCount: 2, RawScore: 1.8},
				},
				Paths: []runner.PathResult{
					{Index: 0, Succeeded: true, Value: "B", VerificationScore: 1, InfoCost: 0.5, Steps: 1},
					{Index: 1, Succeeded: true, Value: "B", VerificationScore: 1, InfoCost: 0.5, Steps: 1},
				},
			},
			{
				ID:            "q2",
				Question:      "Capital of Mars?",
				Abstained:     true,
				AbstainReason: engine.ReasonInsufficientQuorum,
				FailedCount:   2,
				Paths: []runner.PathResult{
					{Index: 0, Error: "timeout"},
					{Index: 1, Error: "timeout"},
				},
			},
		},
		Summary: runner.Summary{
			QuestionsTotal:    2,
			Answered:          1,
			Abstained:         1,
			Graded:            1,
			Correct:           1,
			Accuracy:          0.5,
			SelectiveAccuracy: 1,
			Coverage:          0.5,
			ECE:               0.15,
		},
	}
}
