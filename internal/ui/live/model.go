package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vireon/internal/runner"
)

const defaultTickInterval = 200 * time.Millisecond

// Options configures the live UI.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

// Model is the Bubble Tea model behind the live UI. It owns a State and a
// bubbles table that mirrors State.Rows.
type Model struct {
	state    State
	table    table.Model
	interval time.Duration
	now      time.Time
	noColor  bool
	textCols int
}

// NewModel returns an empty model.
func NewModel(opts Options) Model {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	columns := defaultColumns()
	t := table.New(table.WithColumns(columns), table.WithFocused(false))
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		table:    t,
		interval: interval,
		now:      time.Now(),
		noColor:  opts.NoColor,
		textCols: columns[1].Width,
	}
}

// State returns a copy of the current UI state.
func (m Model) State() State {
	return m.state
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update folds runner messages, ticks and resizes into the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		columns := columnsForWidth(msg.Width)
		m.textCols = columns[1].Width
		m.table.SetColumns(columns)
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-5, 1))
	case tickMsg:
		m.now = time.Time(msg)
		m.syncRows()
		return m, m.tick()
	case runStartedMsg:
		m.state.RunID = msg.runID
		m.state.Model = msg.model
		m.state.Questions = msg.questions
		m.state.StartedAt = msg.at
	case questionMsg:
		m.state = Reduce(m.state, runner.QuestionEvent(msg))
	case runFinishedMsg:
		summary := runner.Summary(msg)
		m.state.Summary = &summary
		m.state.LastEvent = "run finished"
		m.syncRows()
		return m, tea.Quit
	default:
		return m, nil
	}
	m.syncRows()
	return m, nil
}

// View stacks the header, counters, question table and footer.
func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderHeader(m.state, m.now, m.noColor),
		renderSummary(m.state, m.noColor),
		m.table.View(),
		renderResultLine(m.state, m.noColor),
		renderFooter(m.state, m.noColor),
	)
}

func (m *Model) syncRows() {
	m.table.SetRows(rowsForState(m.state, m.now, m.noColor, m.textCols))
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
