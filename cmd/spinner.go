package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type spinnerDoneMsg struct {
	err error
}

type spinnerStatusMsg string

type spinnerModel struct {
	spinner spinner.Model
	label   string
	status  string
	started time.Time
	work    tea.Cmd
	hint    lipgloss.Style
	err     error
	done    bool
}

func newSpinnerModel(label string, work tea.Cmd) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return spinnerModel{
		spinner: s,
		label:   label,
		started: time.Now(),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		work:    work,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case spinnerStatusMsg:
		m.status = string(msg)
		return m, nil
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}

	hint := time.Since(m.started).Truncate(time.Second).String()
	if m.status != "" {
		hint = m.status + " " + hint
	}
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, m.hint.Render(hint))
}

// runWithSpinner shows label on output while work runs and returns work's error. Work can
// call status to show what it is doing next to the label.
func runWithSpinner(ctx context.Context, output io.Writer, label string, work func(ctx context.Context, status func(string)) error) error {
	var p *tea.Program
	status := func(s string) {
		p.Send(spinnerStatusMsg(s))
	}
	workCmd := func() tea.Msg {
		return spinnerDoneMsg{err: work(ctx, status)}
	}

	p = tea.NewProgram(
		newSpinnerModel(label, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(spinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
