package runner

import (
	"errors"
	"path/filepath"
	"strings"
)

// File names written under <output root>/<run id>/.
const (
	ResultsFile   = "results.json"
	ResponsesFile = "responses.jsonl"
	MetricsFile   = "metrics.prom"
)

// OutputPaths locates the files of one run.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths rejects a blank root or run id.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	switch {
	case strings.TrimSpace(root) == "":
		return OutputPaths{}, errors.New("output root is empty")
	case strings.TrimSpace(runID) == "":
		return OutputPaths{}, errors.New("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

func (o OutputPaths) RunDir() string        { return filepath.Join(o.Root, o.RunID) }
func (o OutputPaths) ResultsPath() string   { return filepath.Join(o.RunDir(), ResultsFile) }
func (o OutputPaths) ResponsesPath() string { return filepath.Join(o.RunDir(), ResponsesFile) }
func (o OutputPaths) MetricsPath() string   { return filepath.Join(o.RunDir(), MetricsFile) }
