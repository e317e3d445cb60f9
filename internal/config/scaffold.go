package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ExampleQuestionsFile is written next to a scaffolded config.
const ExampleQuestionsFile = "questions.example.jsonl"

const defaultConfig = `version: 1

backend:
  # openai | xai | stub
  provider: "xai"
  model: "grok-4"
  api_key_env: "XAI_API_KEY"
  max_tokens: 4096

engine:
  lambda_smoothing: 0.05
  disagreement_weight: 1.0
  confidence_threshold: 0.60
  min_paths_quorum: 1
  squash:
    # linear | logistic
    kind: "linear"
    reference: 0.5
    steepness: 10
    midpoint: 0.25

solver:
  num_paths: 5
  temperature: 0.7
  temperature_spread: 0.1
  option_letters: "ABCDE"
  latency_weight: 1.0

checker:
  verifications: 2
  temperature: 0.1

run:
  workers: 4
  path_timeout_seconds: 120
  output_dir: {{output_dir}}
`

const exampleQuestions = `{"id": "q0001", "question": "Which planet is closest to the Sun?", "options": ["Venus", "Mercury", "Earth", "Mars"], "answer": "B", "category": "astronomy"}
{"id": "q0002", "question": "What is the chemical symbol for sodium?", "options": ["S", "So", "Na", "Sd"], "answer": "C", "category": "chemistry"}
`

// Scaffold writes a default config and an example questions file. It refuses
// to overwrite existing files and returns the paths it wrote. An empty
// outputDir keeps DefaultOutputDir.
func Scaffold(configPath, outputDir string) ([]string, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = DefaultOutputDir
	}
	questionsPath := filepath.Join(filepath.Dir(configPath), ExampleQuestionsFile)
	for _, path := range []string{configPath, questionsPath} {
		if err := ensureAbsent(path); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(renderDefaultConfig(outputDir)), 0o644); err != nil {
		return nil, fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(questionsPath, []byte(exampleQuestions), 0o644); err != nil {
		return nil, fmt.Errorf("write questions file: %w", err)
	}
	return []string{configPath, questionsPath}, nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %q: %w", path, err)
	}
	return nil
}

func renderDefaultConfig(outputDir string) string {
	return strings.Replace(defaultConfig, "{{output_dir}}", strconv.Quote(strings.TrimSpace(outputDir)), 1)
}
