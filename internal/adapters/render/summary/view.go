package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/aiprobe-cli/internal/application"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

const barWidth = 24

func renderView(report application.BatchReport, s styles) string {
	results := report.Results()
	succeeded := 0
	for _, result := range results {
		if result.Succeeded() {
			succeeded++
		}
	}

	lines := []string{
		s.title.Render("AI Probe Run Summary"),
		s.header.Render(fmt.Sprintf("run: %s  platforms: %d  results: %d  succeeded: %d  took: %s",
			report.RunID, len(report.Platforms), len(results), succeeded, formatDuration(report.FinishedAt.Sub(report.StartedAt)))),
	}
	if m := report.Monitor; m != nil && m.Total > 0 {
		lines = append(lines, s.header.Render(fmt.Sprintf("attempts: %d  retries: %d  timed out: %d  login failures: %d  avg query: %s",
			m.Attempts, m.Retries(), m.TimedOut, m.LoginFailures, formatDuration(m.AvgDuration()))))
	}
	if report.Interrupted {
		lines = append(lines, s.warning.Render("run interrupted before every query finished"))
	}

	if len(report.Platforms) == 0 {
		lines = append(lines, s.empty.Render("No platforms were run."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, platform := range report.Platforms {
		lines = append(lines, s.section.Render(renderPlatform(platform, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlatform(report application.PlatformReport, s styles) string {
	var ok, timedOut int
	failures := map[domain.ErrorKind]int{}
	for _, result := range report.Results {
		if result.Succeeded() {
			ok++
		} else {
			failures[result.ErrorKind]++
		}
		if result.TimedOut {
			timedOut++
		}
	}

	percent := 0.0
	if len(report.Results) > 0 {
		percent = float64(ok) / float64(len(report.Results)) * 100
	}

	rate := lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100)).
		Render(fmt.Sprintf("%d/%d ok", ok, len(report.Results)))
	parts := []string{
		s.platform.Render(string(report.Platform)),
		lipgloss.JoinHorizontal(lipgloss.Top, renderProgressBar(percent, barWidth, s), " ", rate),
	}

	if timedOut > 0 {
		parts = append(parts, s.warning.Render(fmt.Sprintf("partial (timed out): %d", timedOut)))
	}
	if line := failureLine(failures); line != "" {
		parts = append(parts, s.failure.Render(line))
	}

	switch {
	case report.ExportError != "":
		parts = append(parts, s.failure.Render("export failed: "+report.ExportError))
	case report.ExportPath != "":
		parts = append(parts, s.detail.Render("export: "+report.ExportPath))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func failureLine(failures map[domain.ErrorKind]int) string {
	if len(failures) == 0 {
		return ""
	}

	order := []domain.ErrorKind{
		domain.ErrorKindLoginFailure,
		domain.ErrorKindNavigationFailure,
		domain.ErrorKindExtractionFailure,
		domain.ErrorKindIntegrityViolation,
		domain.ErrorKindSessionCorruption,
		domain.ErrorKindInternal,
	}
	var parts []string
	for _, kind := range order {
		if n := failures[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", kind, n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "failed " + strings.Join(parts, ", ")
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the ANSI greyscale ramp, 240 at min to 255 at max.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}
