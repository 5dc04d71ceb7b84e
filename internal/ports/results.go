package ports

import (
	"context"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type ExportRequest struct {
	RunID    string
	Platform domain.PlatformID
	RunAt    time.Time
	Results  []domain.QueryResult
}

type ResultExporter interface {
	Export(ctx context.Context, req ExportRequest) (string, error)
}

type HistoryStats struct {
	Platform        domain.PlatformID
	Total           int
	Succeeded       int
	Failed          int
	TimedOut        int
	LoginFailures   int
	AvgDuration     time.Duration
	AvgReferences   float64
	LastRunAt       time.Time
	AvgAttemptsUsed float64
}

type ResultHistory interface {
	Append(ctx context.Context, runID string, result domain.QueryResult) error
	Stats(ctx context.Context) ([]HistoryStats, error)
}

type ProgressSink interface {
	Notify(ctx context.Context, progress domain.Progress) error
}

// DiagnosticsSink stores failure artifacts. Implementations must not fail the caller.
type DiagnosticsSink interface {
	Capture(ctx context.Context, platform domain.PlatformID, page Page)
}

type MarkupConverter interface {
	ToMarkdown(html string) (string, error)
}
