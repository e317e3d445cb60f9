package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Console UI modes accepted by eval --ui.
const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

const liveFallbackWarning = "Live UI requested but stdout is not a TTY; falling back to plain output."

// uiModeDecision is the outcome of resolveUIMode plus any warning to print.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer can host the live UI.
var isTerminal = defaultIsTerminal

// resolveUIMode validates mode and decides whether eval shows the live UI.
// Verbose logging also writes to stdout, so it forces plain output.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = uiAuto
	}
	if mode != uiAuto && mode != uiLive && mode != uiPlain {
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
	}
	if verbose || mode == uiPlain {
		return uiModeDecision{}, nil
	}
	if isTerminal(stdout) {
		return uiModeDecision{useLive: true}, nil
	}
	if mode == uiLive {
		return uiModeDecision{warning: liveFallbackWarning}, nil
	}
	return uiModeDecision{}, nil
}

// defaultIsTerminal treats TERM=dumb as non-interactive since the live UI
// redraws the screen.
func defaultIsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && os.Getenv("TERM") != "dumb" && term.IsTerminal(int(f.Fd()))
}
