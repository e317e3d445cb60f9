package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vireon/internal/question"
)

// RunAndWrite runs questions and writes the outputs under outputDir. An
// interrupted run still writes its partial results; the run error is returned
// alongside the paths.
func RunAndWrite(ctx context.Context, questions []question.Question, params RunParams, outputDir string) (Results, OutputPaths, error) {
	results, runErr := Run(ctx, questions, params)
	if results.RunID == "" {
		return results, OutputPaths{}, runErr
	}
	paths, err := WriteRunOutputs(results, outputDir)
	if err != nil {
		if runErr != nil {
			return results, OutputPaths{}, errors.Join(runErr, err)
		}
		return results, OutputPaths{}, err
	}
	return results, paths, runErr
}

// WriteRunOutputs writes results.json and responses.jsonl under
// <outputDir>/<run_id>/.
func WriteRunOutputs(results Results, outputDir string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	if err := writeRecords(paths.ResponsesPath(), BuildRecords(results)); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// writeJSON writes a Results payload as pretty JSON.
func writeJSON(path string, results Results) error {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeRecords(path string, records []ResultRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			file.Close()
			return fmt.Errorf("encode record %s: %w", record.QuestionID, err)
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
