package question

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoQuestions indicates that a questions file held no records.
var ErrNoQuestions = errors.New("no questions found")

// record mirrors Question on the wire; ids may be strings or integers.
type record struct {
	ID       json.RawMessage            `json:"id"`
	Prompt   string                     `json:"question"`
	Options  []string                   `json:"options"`
	Answer   *string                    `json:"answer"`
	Category string                     `json:"category"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// LoadFile reads questions from a JSON array or JSON-lines file, then
// normalizes and validates them.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	questions, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return Normalize(questions)
}

// Parse decodes question records without normalizing them. name labels
// error locations.
func Parse(data []byte, name string) ([]Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoQuestions)
	}
	collector := &issueCollector{}
	var questions []Question
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for i, item := range items {
			location := fmt.Sprintf("%s[%d]", name, i)
			q, ok, err := parseRecord(item, location, collector)
			if err != nil {
				return nil, err
			}
			if ok {
				questions = append(questions, q)
			}
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
				continue
			}
			location := fmt.Sprintf("%s:%d", name, lineNo)
			q, ok, err := parseRecord([]byte(line), location, collector)
			if err != nil {
				return nil, err
			}
			if ok {
				questions = append(questions, q)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoQuestions)
	}
	return questions, nil
}

// parseRecord decodes one record. Syntax errors abort; schema violations are
// collected and reported together.
func parseRecord(data []byte, location string, collector *issueCollector) (Question, bool, error) {
	var generic interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return Question{}, false, fmt.Errorf("parse %s: %w", location, err)
	}
	if err := validateRecord(generic); err != nil {
		collector.add(location, err.Error())
		return Question{}, false, nil
	}

	var raw record
	if err := json.Unmarshal(data, &raw); err != nil {
		return Question{}, false, fmt.Errorf("parse %s: %w", location, err)
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		collector.add(location+".id", err.Error())
		return Question{}, false, nil
	}
	q := Question{
		ID:       id,
		Prompt:   raw.Prompt,
		Options:  raw.Options,
		Category: raw.Category,
		Metadata: raw.Metadata,
	}
	if raw.Answer != nil {
		q.Answer = *raw.Answer
	}
	return q, true, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("must be a string or integer")
	}
	return number.String(), nil
}
