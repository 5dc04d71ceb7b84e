package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/bnema/aiprobe-cli/internal/application"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// reportModel renders a finished batch once and quits.
type reportModel struct {
	report application.BatchReport
	styles styles
	output string
}

func (m reportModel) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(renderReadyMsg); ok {
		m.output = renderView(m.report, m.styles)
		return m, tea.Quit
	}
	return m, nil
}

func (m reportModel) View() string {
	return m.output
}

// Render returns the end-of-run summary for a batch report.
func Render(report application.BatchReport) (string, error) {
	p := tea.NewProgram(
		reportModel{report: report, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := final.(reportModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return rendered.View(), nil
}

type progressMsg domain.Progress

type liveDoneMsg struct{}

// liveModel keeps a bar of finished tasks under the per-task lines.
type liveModel struct {
	total    int
	finished int
	current  domain.PlatformID
	styles   styles
	done     bool
}

func (m liveModel) Init() tea.Cmd {
	return nil
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.finished++
		m.current = msg.Platform
		return m, tea.Println(ProgressLine(domain.Progress(msg)))
	case liveDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m liveModel) View() string {
	if m.done || m.total == 0 {
		return ""
	}
	percent := float64(m.finished) / float64(m.total) * 100
	return fmt.Sprintf("%s %d/%d %s", renderProgressBar(percent, barWidth, m.styles), m.finished, m.total, m.current)
}

// Live prints progress lines as tasks finish. On a terminal it also keeps a progress bar
// at the bottom; anywhere else it writes plain lines.
type Live struct {
	out     io.Writer
	program *tea.Program
	done    chan error
}

func StartLive(ctx context.Context, out io.Writer, total int) *Live {
	l := &Live{out: out}
	if !isTerminal(out) {
		return l
	}

	l.program = tea.NewProgram(
		liveModel{total: total, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	l.done = make(chan error, 1)
	go func() {
		_, err := l.program.Run()
		l.done <- err
	}()
	return l
}

func (l *Live) Report(p domain.Progress) {
	if l.program == nil {
		_, _ = fmt.Fprintln(l.out, ProgressLine(p))
		return
	}
	l.program.Send(progressMsg(p))
}

// Stop removes the bar. It must be called once, after the last Report.
func (l *Live) Stop() error {
	if l.program == nil {
		return nil
	}
	l.program.Send(liveDoneMsg{})
	err := <-l.done
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
