package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks interactive questions on out and reads answers from in.
// End of input accepts the default.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) prompter {
	return prompter{in: bufio.NewReader(in), out: out}
}

// answer reads one trimmed line. eof is true when input ended on this line.
func (p prompter) answer() (text string, eof bool, err error) {
	line, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), false, nil
}

// text asks for a free-form value. An empty answer keeps fallback.
func (p prompter) text(label, fallback string) (string, error) {
	for {
		if fallback == "" {
			fmt.Fprintf(p.out, "%s: ", label)
		} else {
			fmt.Fprintf(p.out, "%s [%s]: ", label, fallback)
		}
		value, eof, err := p.answer()
		switch {
		case err != nil:
			return "", err
		case value != "":
			return value, nil
		case fallback != "":
			return fallback, nil
		case eof:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// confirm asks a yes/no question and re-asks on anything else.
func (p prompter) confirm(label string, fallback bool) (bool, error) {
	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		value, eof, err := p.answer()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(value) {
		case "":
			return fallback, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid response %q", value)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
