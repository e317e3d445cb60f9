package question

import (
	"errors"
	"testing"
)

// TestExtractAnswerLetter verifies tagged and fallback extraction.
func TestExtractAnswerLetter(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		letters string
		want    string
	}{
		{name: "answer tag", output: "Reasoning.\nAnswer: C", letters: "ABCDE", want: "C"},
		{name: "lowercase tag and letter", output: "so the final answer: b", letters: "ABCDE", want: "B"},
		{name: "bold letter", output: "Answer: **D**", letters: "ABCDE", want: "D"},
		{name: "parenthesized", output: "Choice: (A)", letters: "ABCDE", want: "A"},
		{name: "last tag wins", output: "Answer: A was tempting. Answer: E", letters: "ABCDE", want: "E"},
		{name: "fallback standalone", output: "I think it is B.", letters: "ABCDE", want: "B"},
		{name: "restricted letters", output: "Answer: E", letters: "ABC", want: ""},
		{name: "fallback ignores words", output: "Because Every Day", letters: "ABCDE", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAnswerLetter(tt.output, tt.letters)
			if tt.want == "" {
				if !errors.Is(err, ErrUnparseable) {
					t.Fatalf("expected ErrUnparseable, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestCountSteps verifies fragments shorter than four characters are ignored.
func TestCountSteps(t *testing.T) {
	if got := CountSteps(""); got != 1 {
		t.Fatalf("expected minimum of 1, got %d", got)
	}
	if got := CountSteps("First compute x. Then y.\nok.\nAnswer: B"); got != 3 {
		t.Fatalf("expected 3 steps, got %d", got)
	}
}
