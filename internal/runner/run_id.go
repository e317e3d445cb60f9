package runner

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const runIDStamp = "20060102T150405Z"

// NewRunID returns a run id that sorts by start time: a UTC timestamp, a
// dash, and twelve random hex digits.
func NewRunID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return stampRunID(time.Now(), id), nil
}

func stampRunID(at time.Time, id uuid.UUID) string {
	digits := strings.ReplaceAll(id.String(), "-", "")
	return at.UTC().Format(runIDStamp) + "-" + digits[:12]
}

func pickRunID(gen func() (string, error)) (string, error) {
	if gen == nil {
		gen = NewRunID
	}
	runID, err := gen()
	switch {
	case err != nil:
		return "", fmt.Errorf("create run id: %w", err)
	case strings.TrimSpace(runID) == "":
		return "", fmt.Errorf("create run id: generator returned an empty id")
	}
	return runID, nil
}
