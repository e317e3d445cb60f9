package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"vireon/internal/runner"
)

// CanonicalJSON encodes value with every object's keys sorted, whatever its
// Go shape. Raw JSON and byte slices are treated as already-encoded documents.
func CanonicalJSON(value any) ([]byte, error) {
	var encoded []byte
	switch v := value.(type) {
	case json.RawMessage:
		encoded = v
	case []byte:
		encoded = v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("canonical json: %w", err)
		}
		encoded = data
	}
	// Decoding into any yields plain maps, which encoding/json writes sorted.
	var tree any
	if err := json.Unmarshal(encoded, &tree); err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	return json.Marshal(tree)
}

// QuestionKey fingerprints the parts of a question result that identify the
// question itself, so the same question asked in two runs maps to one row.
func QuestionKey(result runner.QuestionResult) (string, error) {
	doc, err := CanonicalJSON(map[string]string{
		"id":       result.ID,
		"question": strings.TrimSpace(result.Question),
		"category": result.Category,
		"answer":   result.GroundTruth,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:]), nil
}
