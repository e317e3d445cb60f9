package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// TestScoreCommandText verifies accuracy and missing counts in the text report.
func TestScoreCommandText(t *testing.T) {
	_, questionsPath := writeProject(t, stubConfig)
	resultsPath := filepath.Join(t.TempDir(), "results.jsonl")
	writeFile(t, resultsPath, `{"question_id": "q1", "correct": true, "confidence": 0.95}
{"id": "q2", "is_correct": false, "confidence": 0.15}
`)

	var out, errOut bytes.Buffer
	code := Run([]string{"score", resultsPath, "--questions", questionsPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	for _, want := range []string{"Scored questions : 2", "Accuracy         : 50.00%", "Calibration (ECE): 0.100", "Missing results  : 1"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output, got %q", want, out.String())
		}
	}
}

// TestScoreCommandJSON verifies the --json report shape.
func TestScoreCommandJSON(t *testing.T) {
	_, questionsPath := writeProject(t, stubConfig)
	resultsPath := filepath.Join(t.TempDir(), "results.jsonl")
	writeFile(t, resultsPath, `{"question_id": "q1", "correct": true, "confidence": 1.0}
{"question_id": "q3", "confidence": 0.4}
`)

	var out, errOut bytes.Buffer
	code := Run([]string{"score", "--questions", questionsPath, "--json", resultsPath}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	var got struct {
		N        int     `json:"n"`
		Accuracy float64 `json:"accuracy"`
		Missing  int     `json:"missing"`
		Skipped  int     `json:"skipped"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v (%s)", err, out.String())
	}
	if got.N != 1 || got.Accuracy != 1 || got.Skipped != 1 {
		t.Fatalf("unexpected report %+v", got)
	}
}

// TestScoreCommandUsage verifies --questions and the results file are required.
func TestScoreCommandUsage(t *testing.T) {
	for _, args := range [][]string{{"score", "results.jsonl"}, {"score", "--questions", "q.jsonl"}} {
		var out, errOut bytes.Buffer
		if code := Run(args, &out, &errOut); code != ExitUsage {
			t.Fatalf("%v: expected exit %d, got %d", args, ExitUsage, code)
		}
	}
}

// TestScoreCommandMissingResults verifies unreadable results fail.
func TestScoreCommandMissingResults(t *testing.T) {
	_, questionsPath := writeProject(t, stubConfig)
	var out, errOut bytes.Buffer
	code := Run([]string{"score", "--questions", questionsPath, filepath.Join(t.TempDir(), "missing.jsonl")}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Failed to load results") {
		t.Fatalf("expected load failure, got %q", errOut.String())
	}
}
