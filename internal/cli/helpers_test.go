package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const stubConfig = `version: 1
backend:
  provider: stub
solver:
  num_paths: 3
checker:
  verifications: 1
run:
  workers: 2
  output_dir: "./out"
`

const sampleQuestions = `{"id": "q1", "question": "Closest planet to the Sun?", "options": ["Venus", "Mercury", "Earth"], "answer": "B", "category": "astronomy"}
{"id": "q2", "question": "Symbol for sodium?", "options": ["Na", "So", "S"], "answer": "A", "category": "chemistry"}
{"id": "q3", "question": "Largest ocean?", "options": ["Atlantic", "Pacific"], "category": "geography"}
`

// writeProject lays out .vireon/config.yml and questions.jsonl under a temp
// dir and returns the config and questions paths.
func writeProject(t *testing.T, configBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	specPath := filepath.Join(dir, ".vireon", "config.yml")
	writeFile(t, specPath, configBody)
	questionsPath := filepath.Join(dir, "questions.jsonl")
	writeFile(t, questionsPath, sampleQuestions)
	return specPath, questionsPath
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
