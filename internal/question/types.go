package question

import "encoding/json"

// MaxOptions is the largest number of answer options a question may carry.
const MaxOptions = 5

// Question is one exam-style question record.
type Question struct {
	ID       string                     `json:"id,omitempty"`
	Prompt   string                     `json:"question"`
	Options  []string                   `json:"options,omitempty"`
	Answer   string                     `json:"answer,omitempty"`
	Category string                     `json:"category,omitempty"`
	Metadata map[string]json.RawMessage `json:"metadata,omitempty"`
}

// HasAnswerKey reports whether the record carries a ground-truth letter.
func (q Question) HasAnswerKey() bool {
	return q.Answer != ""
}

// OptionLetters returns the letters that label q's options, or fallback when
// the question has no options.
func (q Question) OptionLetters(fallback string) string {
	if len(q.Options) == 0 {
		return fallback
	}
	if len(q.Options) > len(optionAlphabet) {
		return optionAlphabet
	}
	return optionAlphabet[:len(q.Options)]
}

const optionAlphabet = "ABCDE"
