package question

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnparseable indicates that no option letter could be found in the output.
var ErrUnparseable = errors.New("no answer letter found")

var answerTags = []string{"final answer:", "answer:", "final:", "choice:"}

// ExtractAnswerLetter finds the option letter a solver committed to. It first
// looks for the last "Answer: X" style tag, then falls back to the last
// standalone option letter in the text. Letters are matched case-insensitively
// against letters and returned upper-cased.
func ExtractAnswerLetter(output, letters string) (string, error) {
	letters = strings.ToUpper(letters)
	if letters == "" {
		return "", ErrUnparseable
	}
	lower := strings.ToLower(output)
	for _, tag := range answerTags {
		index := strings.LastIndex(lower, tag)
		if index == -1 {
			continue
		}
		rest := strings.TrimLeftFunc(lower[index+len(tag):], func(r rune) bool {
			return unicode.IsSpace(r) || r == '*' || r == '(' || r == '['
		})
		if rest == "" {
			continue
		}
		candidate := strings.ToUpper(rest[:1])
		if strings.Contains(letters, candidate) && isBoundary(rest, 1) {
			return candidate, nil
		}
	}
	if letter, ok := lastStandaloneLetter(output, letters); ok {
		return letter, nil
	}
	return "", ErrUnparseable
}

// lastStandaloneLetter scans backwards for an option letter that is not part
// of a longer word.
func lastStandaloneLetter(output, letters string) (string, bool) {
	runes := []rune(output)
	for i := len(runes) - 1; i >= 0; i-- {
		r := unicode.ToUpper(runes[i])
		if !strings.ContainsRune(letters, r) || !unicode.IsUpper(runes[i]) {
			continue
		}
		if i > 0 && isWordRune(runes[i-1]) {
			continue
		}
		if i+1 < len(runes) && isWordRune(runes[i+1]) {
			continue
		}
		return string(r), true
	}
	return "", false
}

func isBoundary(text string, offset int) bool {
	if offset >= len(text) {
		return true
	}
	return !isWordRune(rune(text[offset]))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// CountSteps approximates reasoning steps as the number of sentence or line
// fragments longer than three characters. It never returns less than 1.
func CountSteps(output string) int {
	fragments := strings.FieldsFunc(output, func(r rune) bool {
		return r == '.' || r == '\n'
	})
	steps := 0
	for _, fragment := range fragments {
		if len(strings.TrimSpace(fragment)) > 3 {
			steps++
		}
	}
	if steps < 1 {
		return 1
	}
	return steps
}
