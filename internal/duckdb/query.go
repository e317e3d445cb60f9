package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunRow is one stored run as listed by reports.
type RunRow struct {
	RunID             string
	Provider          string
	Model             string
	StartedAt         time.Time
	Interrupted       bool
	QuestionsTotal    int
	Answered          int
	Abstained         int
	Correct           int
	Accuracy          float64
	SelectiveAccuracy float64
	Coverage          float64
	ECE               float64
}

// CategoryRow aggregates one run's outcomes for a single category.
type CategoryRow struct {
	RunID          string
	Category       string
	Questions      int
	Answered       int
	Correct        int
	MeanConfidence float64
}

// ListRuns returns stored runs, newest first. A positive limit caps the rows.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]RunRow, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	query := `SELECT run_id, provider, model, started_at, interrupted, questions_total, answered, abstained,
	  correct, accuracy, selective_accuracy, coverage, ece
	FROM runs
	ORDER BY started_at DESC, run_id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(
			&row.RunID,
			&row.Provider,
			&row.Model,
			&row.StartedAt,
			&row.Interrupted,
			&row.QuestionsTotal,
			&row.Answered,
			&row.Abstained,
			&row.Correct,
			&row.Accuracy,
			&row.SelectiveAccuracy,
			&row.Coverage,
			&row.ECE,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}

// CategoryOutcomes breaks a run down by question category.
func CategoryOutcomes(ctx context.Context, db *sql.DB, runID string) ([]CategoryRow, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(
		ctx,
		`SELECT run_id, category, questions, answered, correct, mean_confidence
		 FROM v_category_outcomes
		 WHERE run_id = ?
		 ORDER BY category`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("category outcomes: %w", err)
	}
	defer rows.Close()

	var out []CategoryRow
	for rows.Next() {
		var row CategoryRow
		if err := rows.Scan(&row.RunID, &row.Category, &row.Questions, &row.Answered, &row.Correct, &row.MeanConfidence); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category outcomes: %w", err)
	}
	return out, nil
}
