package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// progressMsg carries the number of rows processed so far.
type progressMsg int

// finishedMsg ends the program.
type finishedMsg struct{ err error }

type progressModel struct {
	bar   progress.Model
	label string
	done  int
	total int
	err   error
}

func newProgressModel(label string, total int) progressModel {
	return progressModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		label: label,
		total: total,
	}
}

// Init implements tea.Model.
func (m progressModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.done = int(msg)
		var pct float64
		if m.total > 0 {
			pct = float64(m.done) / float64(m.total)
		}
		return m, m.bar.SetPercent(pct)
	case finishedMsg:
		m.err = msg.err
		return m, tea.Quit
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	// There is no cancellation: once a load starts it runs to completion
	// or fails, so key presses are ignored.
	return m, nil
}

// View implements tea.Model.
func (m progressModel) View() string {
	return fmt.Sprintf("%s %s %d/%d rows\n", LabelStyle.Render(m.label), m.bar.View(), m.done, m.total)
}

// RunWithProgress executes fn while rendering a row-count progress bar.
// fn receives a report callback to publish how many rows are done; the
// callback is safe to call from fn's goroutine. In non-interactive mode no
// bar is rendered and fn runs directly with a no-op reporter.
func RunWithProgress(label string, total int, fn func(report func(done int)) error) error {
	if !IsInteractive() {
		return fn(func(int) {})
	}

	p := tea.NewProgram(newProgressModel(label, total))

	errCh := make(chan error, 1)
	go func() {
		err := fn(func(done int) {
			p.Send(progressMsg(done))
		})
		p.Send(finishedMsg{err: err})
		errCh <- err
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("render progress: %w", err)
	}
	return <-errCh
}
