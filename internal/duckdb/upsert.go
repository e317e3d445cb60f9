package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vireon/internal/runner"
)

// ErrRunExists reports an attempt to ingest a run id twice.
var ErrRunExists = errors.New("duckdb: run already ingested")

// IngestSummary counts the rows written for one run.
type IngestSummary struct {
	RunID      string
	Questions  int
	Candidates int
	Paths      int
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// newID is swapped in tests that need stable identifiers.
var newID = uuid.NewString

// IngestRun writes a run, its questions, candidates and paths in a single
// transaction. Questions are deduplicated by QuestionKey across runs.
func IngestRun(ctx context.Context, db *sql.DB, results runner.Results) (IngestSummary, error) {
	if ctx == nil {
		return IngestSummary{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return IngestSummary{}, errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return IngestSummary{}, errors.New("duckdb: run id is required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("begin ingest: %w", err)
	}
	summary, err := ingestRun(ctx, tx, results)
	if err != nil {
		_ = tx.Rollback()
		return IngestSummary{}, err
	}
	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("commit ingest: %w", err)
	}
	return summary, nil
}

func ingestRun(ctx context.Context, tx execer, results runner.Results) (IngestSummary, error) {
	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE run_id = ?", results.RunID).Scan(&existing); err != nil {
		return IngestSummary{}, fmt.Errorf("check run: %w", err)
	}
	if existing > 0 {
		return IngestSummary{}, fmt.Errorf("%w: %s", ErrRunExists, results.RunID)
	}
	if err := insertRun(ctx, tx, results); err != nil {
		return IngestSummary{}, err
	}

	summary := IngestSummary{RunID: results.RunID}
	for position, result := range results.Questions {
		questionID, _, err := UpsertQuestion(ctx, tx, result)
		if err != nil {
			return IngestSummary{}, err
		}
		resultID, err := insertQuestionResult(ctx, tx, results.RunID, questionID, position, result)
		if err != nil {
			return IngestSummary{}, err
		}
		for rank, candidate := range result.Candidates {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO candidates (
				  result_id, rank, value, vote_fraction, mean_verification, mean_info_cost, support_count, raw_score
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				resultID,
				rank,
				candidate.Value,
				candidate.VoteFraction,
				candidate.MeanVerification,
				candidate.MeanInfoCost,
				candidate.SupportCount,
				candidate.RawScore,
			); err != nil {
				return IngestSummary{}, fmt.Errorf("insert candidate %s/%d: %w", result.ID, rank, err)
			}
			summary.Candidates++
		}
		for _, path := range result.Paths {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO paths (
				  result_id, path_index, succeeded, value, verification_score, info_cost, steps,
				  latency_seconds, temperature, error
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				resultID,
				path.Index,
				path.Succeeded,
				nullableString(path.Value),
				path.VerificationScore,
				path.InfoCost,
				path.Steps,
				path.LatencySeconds,
				path.Temperature,
				nullableString(path.Error),
			); err != nil {
				return IngestSummary{}, fmt.Errorf("insert path %s/%d: %w", result.ID, path.Index, err)
			}
			summary.Paths++
		}
		summary.Questions++
	}
	return summary, nil
}

func insertRun(ctx context.Context, tx execer, results runner.Results) error {
	settings, err := CanonicalJSON(results.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	s := results.Summary
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
		  run_id, provider, model, questions_file, started_at, finished_at, interrupted, settings,
		  questions_total, answered, abstained, graded, correct,
		  accuracy, selective_accuracy, coverage, ece, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.Provider,
		results.Model,
		nullableString(results.QuestionsFile),
		results.StartedAt.UTC(),
		results.FinishedAt.UTC(),
		results.Interrupted,
		string(settings),
		s.QuestionsTotal,
		s.Answered,
		s.Abstained,
		s.Graded,
		s.Correct,
		s.Accuracy,
		s.SelectiveAccuracy,
		s.Coverage,
		s.ECE,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// UpsertQuestion inserts a question by its fingerprint key when missing and
// returns its row id and key.
func UpsertQuestion(ctx context.Context, db execer, result runner.QuestionResult) (string, string, error) {
	if db == nil {
		return "", "", errors.New("duckdb: db is nil")
	}
	key, err := QuestionKey(result)
	if err != nil {
		return "", "", err
	}
	if _, err := db.ExecContext(
		ctx,
		`INSERT INTO questions (question_id, question_key, external_id, prompt, category, answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, now())
		 ON CONFLICT (question_key) DO NOTHING`,
		newID(),
		key,
		result.ID,
		result.Question,
		nullableString(result.Category),
		nullableString(result.GroundTruth),
	); err != nil {
		return "", "", fmt.Errorf("upsert question %s: %w", result.ID, err)
	}
	var questionID string
	if err := db.QueryRowContext(ctx, "SELECT CAST(question_id AS VARCHAR) FROM questions WHERE question_key = ?", key).Scan(&questionID); err != nil {
		return "", "", fmt.Errorf("lookup question id: %w", err)
	}
	return questionID, key, nil
}

func insertQuestionResult(ctx context.Context, tx execer, runID, questionID string, position int, result runner.QuestionResult) (string, error) {
	id := newID()
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO question_results (
		  result_id, run_id, question_id, position, selected_value, confidence, disagreement,
		  abstained, abstain_reason, correct, succeeded_paths, failed_paths, wall_time_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		runID,
		questionID,
		position,
		nullableString(result.SelectedValue),
		result.Confidence,
		result.Disagreement,
		result.Abstained,
		nullableString(string(result.AbstainReason)),
		nullableBool(result.Correct),
		result.SucceededCount,
		result.FailedCount,
		result.WallTimeSecs,
	); err != nil {
		return "", fmt.Errorf("insert result %s: %w", result.ID, err)
	}
	return id, nil
}
