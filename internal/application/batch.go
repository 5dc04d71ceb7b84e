package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	DefaultRetryCount        = 3
	DefaultRetryDelay        = 5 * time.Second
	DefaultMinResponseLength = 10
)

// QueryRunner executes a single query. Orchestrator is the production implementation.
type QueryRunner interface {
	RunQuery(ctx context.Context, platform domain.PlatformID, query string) domain.QueryResult
}

type BatchRequest struct {
	Queries    []domain.Query
	Platforms  []domain.PlatformID
	RetryCount int
	OnProgress func(domain.Progress)
}

type PlatformReport struct {
	Platform    domain.PlatformID
	Results     []domain.QueryResult
	ExportPath  string
	ExportError string
}

type BatchReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Platforms  []PlatformReport
	// Interrupted is set when the context ended before every task ran.
	Interrupted bool
	// Monitor is the run's counters when a Monitor was attached.
	Monitor *MonitorSnapshot `json:",omitempty"`
}

// Results flattens the per-platform results in execution order.
func (r BatchReport) Results() []domain.QueryResult {
	var out []domain.QueryResult
	for _, platform := range r.Platforms {
		out = append(out, platform.Results...)
	}
	return out
}

type BatchRunner struct {
	runner            QueryRunner
	exporter          ports.ResultExporter
	history           ports.ResultHistory
	progress          ports.ProgressSink
	monitor           *Monitor
	pacer             *Pacer
	clock             ports.Clock
	logger            *slog.Logger
	retryDelay        time.Duration
	minResponseLength int
	newRunID          func() string
}

type BatchOption func(*BatchRunner)

func WithExporter(exporter ports.ResultExporter) BatchOption {
	return func(b *BatchRunner) { b.exporter = exporter }
}

func WithHistory(history ports.ResultHistory) BatchOption {
	return func(b *BatchRunner) { b.history = history }
}

func WithProgressSink(sink ports.ProgressSink) BatchOption {
	return func(b *BatchRunner) { b.progress = sink }
}

func WithMonitor(monitor *Monitor) BatchOption {
	return func(b *BatchRunner) { b.monitor = monitor }
}

func WithPacer(pacer *Pacer) BatchOption {
	return func(b *BatchRunner) {
		if pacer != nil {
			b.pacer = pacer
		}
	}
}

func WithBatchClock(clock ports.Clock) BatchOption {
	return func(b *BatchRunner) {
		if clock != nil {
			b.clock = clock
		}
	}
}

func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRunner) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func WithRetryDelay(delay time.Duration) BatchOption {
	return func(b *BatchRunner) {
		if delay >= 0 {
			b.retryDelay = delay
		}
	}
}

// WithMinResponseLength sets the integrity gate: responses no longer than n runes fail.
func WithMinResponseLength(n int) BatchOption {
	return func(b *BatchRunner) {
		if n >= 0 {
			b.minResponseLength = n
		}
	}
}

func WithRunIDs(next func() string) BatchOption {
	return func(b *BatchRunner) {
		if next != nil {
			b.newRunID = next
		}
	}
}

func NewBatchRunner(runner QueryRunner, opts ...BatchOption) *BatchRunner {
	b := &BatchRunner{
		runner:            runner,
		clock:             ports.SystemClock{},
		logger:            slog.Default(),
		retryDelay:        DefaultRetryDelay,
		minResponseLength: DefaultMinResponseLength,
		newRunID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.pacer == nil {
		b.pacer = NewPacer(DefaultPaceMin, DefaultPaceMax, b.clock)
	}
	return b
}

// Run executes every query on every platform, one at a time. It always returns the results
// gathered so far; a platform's results are exported before the next platform starts.
func (b *BatchRunner) Run(ctx context.Context, req BatchRequest) BatchReport {
	retries := req.RetryCount
	if retries <= 0 {
		retries = DefaultRetryCount
	}

	report := BatchReport{RunID: b.newRunID(), StartedAt: b.clock.Now()}
	logger := b.logger.With("run_id", report.RunID)
	logger.InfoContext(ctx, "batch started", "platforms", len(req.Platforms), "queries", len(req.Queries), "retries", retries)

	first := true
	for _, platform := range req.Platforms {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		platformReport := PlatformReport{Platform: platform}
		for i, query := range req.Queries {
			if !first {
				if err := b.pacer.Wait(ctx); err != nil {
					report.Interrupted = true
					break
				}
			}
			first = false

			task := domain.QueryTask{Platform: platform, Query: query.Text, Tag: query.Tag, RetryBudget: retries}
			result := b.runTask(ctx, logger, task)
			platformReport.Results = append(platformReport.Results, result)

			b.record(ctx, logger, report.RunID, domain.Progress{
				Platform: platform,
				Index:    i + 1,
				Total:    len(req.Queries),
				Result:   result,
			}, req.OnProgress)
		}

		b.checkpoint(ctx, logger, report, &platformReport)
		report.Platforms = append(report.Platforms, platformReport)
		if report.Interrupted {
			break
		}
	}

	report.FinishedAt = b.clock.Now()
	if b.monitor != nil {
		snapshot := b.monitor.Snapshot()
		report.Monitor = &snapshot
	}
	logger.InfoContext(ctx, "batch finished", "duration", report.FinishedAt.Sub(report.StartedAt), "interrupted", report.Interrupted)
	return report
}

func (b *BatchRunner) runTask(ctx context.Context, logger *slog.Logger, task domain.QueryTask) domain.QueryResult {
	start := b.clock.Now()
	logger = logger.With("platform", task.Platform)

	var result domain.QueryResult
	for attempt := 1; attempt <= task.RetryBudget; attempt++ {
		result = b.runner.RunQuery(ctx, task.Platform, task.Query)
		result.Tag = task.Tag
		result.Attempts = attempt
		b.applyIntegrityGate(&result)

		if result.Succeeded() {
			break
		}
		logger.WarnContext(ctx, "query attempt failed",
			"attempt", attempt,
			"of", task.RetryBudget,
			"error_kind", result.ErrorKind,
			"error", result.Error,
		)
		if result.ErrorKind == domain.ErrorKindLoginFailure || attempt == task.RetryBudget {
			break
		}
		if err := b.clock.Sleep(ctx, b.retryDelay); err != nil {
			break
		}
	}

	result.Duration = b.clock.Now().Sub(start)
	return result
}

func (b *BatchRunner) applyIntegrityGate(result *domain.QueryResult) {
	if !result.Succeeded() {
		return
	}
	length := len([]rune(strings.TrimSpace(result.Response)))
	if length > b.minResponseLength {
		return
	}
	result.TimedOut = false
	result.MarkFailed(fmt.Errorf("%w: %d characters (need more than %d)", domain.ErrIntegrity, length, b.minResponseLength))
}

// record reports a final result exactly once: callback, history, webhook, monitor.
func (b *BatchRunner) record(ctx context.Context, logger *slog.Logger, runID string, progress domain.Progress, onProgress func(domain.Progress)) {
	if onProgress != nil {
		onProgress(progress)
	}
	if b.monitor != nil {
		b.monitor.Record(ctx, progress.Result)
	}

	background := context.WithoutCancel(ctx)
	if b.history != nil {
		if err := b.history.Append(background, runID, progress.Result); err != nil {
			logger.WarnContext(ctx, "append history", "platform", progress.Platform, "error", err)
		}
	}
	if b.progress != nil {
		if err := b.progress.Notify(ctx, progress); err != nil && !errors.Is(err, context.Canceled) {
			logger.WarnContext(ctx, "notify progress", "platform", progress.Platform, "error", err)
		}
	}
}

func (b *BatchRunner) checkpoint(ctx context.Context, logger *slog.Logger, report BatchReport, platformReport *PlatformReport) {
	if b.exporter == nil || len(platformReport.Results) == 0 {
		return
	}

	path, err := b.exporter.Export(context.WithoutCancel(ctx), ports.ExportRequest{
		RunID:    report.RunID,
		Platform: platformReport.Platform,
		RunAt:    report.StartedAt,
		Results:  platformReport.Results,
	})
	if err != nil {
		platformReport.ExportError = err.Error()
		logger.ErrorContext(ctx, "export platform results", "platform", platformReport.Platform, "error", err)
		return
	}

	platformReport.ExportPath = path
	logger.InfoContext(ctx, "exported platform results", "platform", platformReport.Platform, "path", path, "results", len(platformReport.Results))
}
