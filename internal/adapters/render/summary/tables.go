package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const maxCell = 60

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// Profiles lists configured platforms.
func Profiles(profiles []domain.PlatformProfile) string {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Adapter", "URL", "Auth", "Response timeout"})
	for _, p := range profiles {
		auth := string(p.Auth.Kind)
		if auth == "" {
			auth = string(domain.AuthKindNone)
		}
		if p.Auth.Kind != "" && p.Auth.Kind != domain.AuthKindNone && !p.Auth.HasCredential() {
			auth += " (manual)"
		}
		t.AppendRow(table.Row{p.ID, p.DisplayName(), p.AdapterKind(), p.URL, auth, formatDuration(p.ResponseTimeout)})
	}
	return t.Render()
}

// Stats renders history aggregates, one row per platform.
func Stats(stats []ports.HistoryStats) string {
	t := newTable()
	t.AppendHeader(table.Row{"Platform", "Total", "OK", "Failed", "Timed out", "Login failures", "Avg time", "Avg refs", "Avg attempts", "Last run"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Platform,
			s.Total,
			s.Succeeded,
			s.Failed,
			s.TimedOut,
			s.LoginFailures,
			formatDuration(s.AvgDuration),
			fmt.Sprintf("%.1f", s.AvgReferences),
			fmt.Sprintf("%.1f", s.AvgAttemptsUsed),
			s.LastRunAt.Local().Format(time.DateTime),
		})
	}
	return t.Render()
}

type SessionState string

const (
	SessionFresh   SessionState = "fresh"
	SessionStale   SessionState = "stale"
	SessionMissing SessionState = "missing"
	SessionCorrupt SessionState = "corrupt"
)

// SessionStatus describes one platform's stored session as seen at Now.
type SessionStatus struct {
	Platform domain.PlatformID `json:"platform"`
	State    SessionState      `json:"state"`
	SavedAt  time.Time         `json:"saved_at,omitzero"`
	Expires  time.Time         `json:"expires_at,omitzero"`
	Cookies  int               `json:"cookies"`
	Model    string            `json:"model,omitempty"`
	Detail   string            `json:"detail,omitempty"`
}

func Sessions(sessions []SessionStatus) string {
	t := newTable()
	t.AppendHeader(table.Row{"Platform", "State", "Saved", "Expires", "Cookies", "Model"})
	for _, s := range sessions {
		saved, expires := "-", "-"
		if !s.SavedAt.IsZero() {
			saved = s.SavedAt.Local().Format(time.DateTime)
			expires = s.Expires.Local().Format(time.DateTime)
		}
		state := string(s.State)
		if s.Detail != "" {
			state += ": " + text.Trim(s.Detail, maxCell)
		}
		t.AppendRow(table.Row{s.Platform, state, saved, expires, s.Cookies, modelLabel(s.Model)})
	}
	return t.Render()
}

// Result renders a single query result: its answer followed by a references table.
func Result(result domain.QueryResult) string {
	var b strings.Builder

	status := string(result.Status)
	if result.TimedOut {
		status += " (partial, timed out)"
	}
	fmt.Fprintf(&b, "%s · %s · %s · %d attempt(s) · %s\n", result.Platform, modelLabel(result.Model), status, result.Attempts, formatDuration(result.Duration))
	if result.Error != "" {
		fmt.Fprintf(&b, "error [%s]: %s\n", result.ErrorKind, result.Error)
	}
	if result.Response != "" {
		b.WriteString("\n")
		b.WriteString(result.Response)
		b.WriteString("\n")
	}

	if len(result.References) > 0 {
		t := newTable()
		t.AppendHeader(table.Row{"#", "Domain", "Title", "URL"})
		for _, ref := range result.References {
			t.AppendRow(table.Row{ref.Position, ref.Domain, text.Trim(ref.Title, maxCell), ref.URL})
		}
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	} else if result.ReferencesOutcome == domain.ReferencesFailed {
		b.WriteString("\nreferences: extraction failed\n")
	}

	return b.String()
}

// ProgressLine is the one-line report printed after each finished task.
func ProgressLine(p domain.Progress) string {
	r := p.Result
	line := fmt.Sprintf("[%s %d/%d] %s %q", p.Platform, p.Index, p.Total, r.Status, text.Trim(r.Query, maxCell))
	switch {
	case r.TimedOut:
		line += fmt.Sprintf(" partial %d chars", len([]rune(r.Response)))
	case r.Succeeded():
		line += fmt.Sprintf(" %d chars, %d refs", len([]rune(r.Response)), len(r.References))
	default:
		line += fmt.Sprintf(" %s", r.ErrorKind)
	}
	return line + fmt.Sprintf(" (%d attempt(s), %s)", r.Attempts, formatDuration(r.Duration))
}

func modelLabel(model string) string {
	if model == "" {
		return "model unknown"
	}
	return model
}
