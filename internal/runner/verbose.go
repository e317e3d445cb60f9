package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleQuestion
	styleMetrics
	styleAbstain
	styleError
)

var (
	prefixStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
	lineStyles  = map[verboseStyle]lipgloss.Style{
		styleQuestion: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		styleMetrics:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		styleAbstain:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		styleError:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
)

// verboseLogger writes [verbose] lines to the console, styled when it is a
// terminal, and plain to an optional log file. Each line is written whole
// under a shared lock so path workers never interleave.
type verboseLogger struct {
	mu      *sync.Mutex
	console io.Writer
	logFile io.Writer
	styled  bool
}

func newVerboseLogger(params RunParams) verboseLogger {
	if !params.Verbose {
		return verboseLogger{}
	}
	return verboseLogger{
		mu:      &sync.Mutex{},
		console: params.VerboseWriter,
		logFile: params.VerboseLogWriter,
		styled:  !params.NoColor && ShouldUseStyling(params.VerboseWriter),
	}
}

func (v verboseLogger) logf(style verboseStyle, format string, args ...any) {
	if v.mu == nil {
		return
	}
	plain := fmt.Sprintf(format, args...)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.console != nil {
		prefix, line := verbosePrefix, plain
		if v.styled {
			prefix = prefixStyle.Render(prefix)
			if lineStyle, ok := lineStyles[style]; ok {
				line = lineStyle.Render(line)
			}
		}
		fmt.Fprintln(v.console, prefix, line)
	}
	if v.logFile != nil {
		fmt.Fprintln(v.logFile, verbosePrefix, plain)
	}
}

// ShouldUseStyling reports whether writer is a terminal that accepts ANSI
// styling. NO_COLOR, TERM=dumb and CLICOLOR=0 turn styling off.
func ShouldUseStyling(writer io.Writer) bool {
	switch {
	case writer == nil,
		os.Getenv("NO_COLOR") != "",
		os.Getenv("TERM") == "dumb",
		strings.EqualFold(os.Getenv("CLICOLOR"), "0"):
		return false
	}
	fder, ok := writer.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}
