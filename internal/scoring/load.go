// Package scoring grades prediction files against question sets.
package scoring

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingID is returned for a row with none of the recognised id fields.
var ErrMissingID = errors.New("result row missing question id; expected one of question_id, id, qid, index")

var (
	idFields          = []string{"question_id", "id", "qid", "index"}
	correctnessFields = []string{"is_correct", "correct"}
	confidenceFields  = []string{"confidence", "prob"}
)

// Prediction is one graded answer with the confidence it was given.
type Prediction struct {
	QuestionID string  `json:"question_id"`
	Correct    bool    `json:"correct"`
	Confidence float64 `json:"confidence"`
}

// Predictions maps question ids to predictions. Skipped counts rows that had
// an id but no correctness indicator.
type Predictions struct {
	ByID    map[string]Prediction
	Skipped int
}

// LoadResults reads a results file. See ParseResults for accepted shapes.
func LoadResults(path string) (Predictions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Predictions{}, fmt.Errorf("read results: %w", err)
	}
	return ParseResults(data, path)
}

// ParseResults accepts a JSON array of rows, a JSON object with a "questions"
// array, or JSON-lines. Later rows win when ids repeat.
func ParseResults(data []byte, name string) (Predictions, error) {
	rows, err := decodeRows(data, name)
	if err != nil {
		return Predictions{}, err
	}
	predictions := Predictions{ByID: make(map[string]Prediction, len(rows))}
	for i, row := range rows {
		id, ok := firstString(row, idFields)
		if !ok {
			return Predictions{}, fmt.Errorf("%s row %d: %w", name, i+1, ErrMissingID)
		}
		correct, ok := extractCorrect(row)
		if !ok {
			predictions.Skipped++
			continue
		}
		predictions.ByID[id] = Prediction{QuestionID: id, Correct: correct, Confidence: extractConfidence(row)}
	}
	return predictions, nil
}

func decodeRows(data []byte, name string) ([]map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		var rows []map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("%s: parse results array: %w", name, err)
		}
		return rows, nil
	case trimmed[0] == '{':
		var wrapper struct {
			Questions []map[string]json.RawMessage `json:"questions"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err == nil && wrapper.Questions != nil {
			return wrapper.Questions, nil
		}
	}

	var rows []map[string]json.RawMessage
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var row map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, fmt.Errorf("%s:%d: parse results line: %w", name, lineNumber, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: read results: %w", name, err)
	}
	return rows, nil
}

func firstString(row map[string]json.RawMessage, fields []string) (string, bool) {
	for _, field := range fields {
		raw, ok := row[field]
		if !ok || isNull(raw) {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if strings.TrimSpace(text) == "" {
				continue
			}
			return strings.TrimSpace(text), true
		}
		var number json.Number
		if err := json.Unmarshal(raw, &number); err == nil {
			return number.String(), true
		}
	}
	return "", false
}

func extractCorrect(row map[string]json.RawMessage) (bool, bool) {
	for _, field := range correctnessFields {
		raw, ok := row[field]
		if !ok || isNull(raw) {
			continue
		}
		return truthy(raw), true
	}
	if raw, ok := row["score"]; ok && !isNull(raw) {
		score, ok := number(raw)
		return ok && score > 0.5, true
	}
	return false, false
}

// extractConfidence defaults to 1 and clamps into [0,1].
func extractConfidence(row map[string]json.RawMessage) float64 {
	confidence := 1.0
	for _, field := range confidenceFields {
		raw, ok := row[field]
		if !ok {
			continue
		}
		if value, ok := number(raw); ok {
			confidence = value
		}
		break
	}
	return math.Max(0, math.Min(1, confidence))
}

func truthy(raw json.RawMessage) bool {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return flag
	}
	if value, ok := number(raw); ok {
		return value != 0
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		parsed, err := strconv.ParseBool(strings.TrimSpace(text))
		return err == nil && parsed
	}
	return false
}

func number(raw json.RawMessage) (float64, bool) {
	var value float64
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, !math.IsNaN(value)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			return parsed, true
		}
	}
	return 0, false
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
