package runctl

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morroware/DupeFInder/internal/model"
)

// ProgressReporter drives a bubbletea program that prints a single-line
// progress summary to the terminal as outcomes arrive. It
// implements Reporter. The teacher's go.mod already carries
// charmbracelet/bubbletea, bubbles, and lipgloss but never imports them;
// this is where that stack gets a concrete, exercised home -- a live
// terminal progress display for a long-running resolve pass, the same
// class of problem bubbletea is built for.
type ProgressReporter struct {
	program *tea.Program
	mu      sync.Mutex
	model   *progressModel
}

// NewProgressReporter starts the bubbletea program in the background and
// returns a Reporter that feeds it outcome/summary events. Call Stop when
// the run finishes to tear down the terminal program cleanly.
func NewProgressReporter() *ProgressReporter {
	m := newProgressModel()
	p := tea.NewProgram(m)
	pr := &ProgressReporter{program: p, model: m}
	go func() {
		_, _ = p.Run()
	}()
	return pr
}

// Stop quits the bubbletea program.
func (r *ProgressReporter) Stop() {
	r.program.Quit()
}

func (r *ProgressReporter) Outcome(o model.ActionOutcome) {
	r.program.Send(outcomeMsg{outcome: o})
}

func (r *ProgressReporter) Summary(s model.RunSummary) {
	r.program.Send(summaryMsg{summary: s})
}

type outcomeMsg struct{ outcome model.ActionOutcome }
type summaryMsg struct{ summary model.RunSummary }
type tickMsg time.Time

// progressModel is the bubbletea model: a counter display updated on every
// outcome, with a 100ms tick that keeps re-arming itself until the summary
// arrives. Redraw frequency is left to bubbletea's renderer.
type progressModel struct {
	attempted int
	succeeded int
	reclaimed uint64
	done      bool
	style     lipgloss.Style
	spinner   spinner.Model
}

func newProgressModel() *progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &progressModel{
		style:   lipgloss.NewStyle().Bold(true),
		spinner: s,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case outcomeMsg:
		m.attempted++
		if v.outcome.Succeeded() {
			m.succeeded++
			m.reclaimed += v.outcome.BytesReclaimed
		}
		return m, nil
	case summaryMsg:
		m.done = true
		return m, tea.Quit
	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd
	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *progressModel) View() string {
	if m.done {
		return ""
	}
	return m.style.Render(fmt.Sprintf("%s resolving: %d attempted, %d succeeded, %d bytes reclaimed\n", m.spinner.View(), m.attempted, m.succeeded, m.reclaimed))
}

var _ Reporter = (*ProgressReporter)(nil)
