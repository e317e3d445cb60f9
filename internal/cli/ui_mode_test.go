package cli

import (
	"bytes"
	"io"
	"testing"
)

// TestResolveUIMode verifies the live/plain decision for each mode, TTY and verbose combination.
func TestResolveUIMode(t *testing.T) {
	prev := isTerminal
	t.Cleanup(func() { isTerminal = prev })

	cases := map[string]struct {
		mode    string
		verbose bool
		tty     bool
		live    bool
		warn    bool
		err     bool
	}{
		"auto on a terminal":     {mode: "auto", tty: true, live: true},
		"empty defaults to auto": {mode: "", tty: true, live: true},
		"auto when piped":        {mode: "auto"},
		"plain on a terminal":    {mode: "plain", tty: true},
		"verbose beats auto":     {mode: "auto", verbose: true, tty: true},
		"verbose beats live":     {mode: "live", verbose: true},
		"live is case folded":    {mode: "LIVE", tty: true, live: true},
		"live when piped warns":  {mode: "live", warn: true},
		"unknown mode":           {mode: "fancy", tty: true, err: true},
		"unknown mode, verbose":  {mode: "fancy", verbose: true, err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tc.tty }
			got, err := resolveUIMode(tc.mode, tc.verbose, io.Discard)
			if (err != nil) != tc.err {
				t.Fatalf("expected error=%v, got %v", tc.err, err)
			}
			if got.useLive != tc.live || (got.warning != "") != tc.warn {
				t.Fatalf("unexpected decision %+v", got)
			}
		})
	}
}

// TestDefaultIsTerminalBuffer verifies in-memory writers never count as terminals.
func TestDefaultIsTerminalBuffer(t *testing.T) {
	for _, w := range []io.Writer{&bytes.Buffer{}, nil} {
		if defaultIsTerminal(w) {
			t.Fatalf("expected %T to be non-terminal", w)
		}
	}
}
