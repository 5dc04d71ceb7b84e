package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

// DefaultResponseTimeout applies when a profile does not set its own.
const DefaultResponseTimeout = 2 * time.Minute

const tracerName = "github.com/bnema/aiprobe-cli/internal/application"

// Orchestrator runs one query against one platform inside an isolated browsing context.
type Orchestrator struct {
	browser         ports.Browser
	sessions        ports.SessionStore
	profiles        ports.ProfileRepository
	adapters        ports.AdapterFactory
	diagnostics     ports.DiagnosticsSink
	clock           ports.Clock
	logger          *slog.Logger
	contextOpts     ports.ContextOptions
	responseTimeout time.Duration
	tracer          trace.Tracer
}

type OrchestratorOption func(*Orchestrator)

func WithClock(clock ports.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithDiagnostics(sink ports.DiagnosticsSink) OrchestratorOption {
	return func(o *Orchestrator) {
		o.diagnostics = sink
	}
}

// WithContextOptions sets the user agent, locale and viewport of every context opened.
func WithContextOptions(opts ports.ContextOptions) OrchestratorOption {
	return func(o *Orchestrator) {
		opts.State = nil
		o.contextOpts = opts
	}
}

// WithTracerProvider traces to tp instead of the global otel provider.
func WithTracerProvider(tp trace.TracerProvider) OrchestratorOption {
	return func(o *Orchestrator) {
		if tp != nil {
			o.tracer = tp.Tracer(tracerName)
		}
	}
}

func WithResponseTimeout(timeout time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if timeout > 0 {
			o.responseTimeout = timeout
		}
	}
}

func NewOrchestrator(
	browser ports.Browser,
	sessions ports.SessionStore,
	profiles ports.ProfileRepository,
	adapters ports.AdapterFactory,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		browser:         browser,
		sessions:        sessions,
		profiles:        profiles,
		adapters:        adapters,
		clock:           ports.SystemClock{},
		logger:          slog.Default(),
		responseTimeout: DefaultResponseTimeout,
		tracer:          otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run holds the per-query resources opened by begin.
type run struct {
	profile domain.PlatformProfile
	context ports.BrowserContext
	page    ports.Page
	adapter ports.PlatformAdapter
	logger  *slog.Logger
}

// RunQuery never returns an error: every outcome, panics included, is a QueryResult.
func (o *Orchestrator) RunQuery(ctx context.Context, platform domain.PlatformID, query string) (result domain.QueryResult) {
	start := o.clock.Now()
	result = domain.QueryResult{
		Platform:      platform,
		Query:         query,
		Status:        domain.QueryStatusFailed,
		References:    []domain.Reference{},
		SearchResults: []domain.Reference{},
		Timestamp:     start,
		Attempts:      1,
	}

	ctx, span := o.tracer.Start(ctx, "orchestrator.RunQuery", trace.WithAttributes(
		attribute.String("platform", string(platform)),
	))
	defer span.End()

	r := &run{logger: o.logger.With("platform", platform)}
	defer func() {
		if recovered := recover(); recovered != nil {
			o.logger.ErrorContext(ctx, "query panicked", "platform", platform, "panic", recovered)
			result.Response = ""
			result.MarkFailed(fmt.Errorf("query panicked: %v", recovered))
		}
		o.finish(ctx, r, !result.Succeeded())
		result.Duration = o.clock.Now().Sub(start)
		if !result.Succeeded() {
			span.SetStatus(codes.Error, result.Error)
		}
		span.SetAttributes(
			attribute.String("status", string(result.Status)),
			attribute.String("error_kind", string(result.ErrorKind)),
			attribute.Bool("timed_out", result.TimedOut),
		)
	}()

	reportStage(ctx, platform, StageOpening)
	if err := o.begin(ctx, platform, r); err != nil {
		result.MarkFailed(err)
		return result
	}
	if result.Model == "" {
		result.Model = r.profile.Model
	}

	if err := o.login(ctx, r); err != nil {
		result.MarkFailed(err)
		return result
	}

	reportStage(ctx, platform, StageSending)
	if err := r.adapter.SendQuery(ctx, query); err != nil {
		result.MarkFailed(fmt.Errorf("send query: %w", err))
		return result
	}

	timeout := r.profile.ResponseTimeout
	if timeout <= 0 {
		timeout = o.responseTimeout
	}

	reportStage(ctx, platform, StageWaiting)
	waited, ok := r.adapter.WaitForResponse(ctx, timeout)
	if !ok {
		r.logger.WarnContext(ctx, "no response text", "timeout", timeout, "timed_out", waited.TimedOut)
		result.MarkFailed(fmt.Errorf("%w: no response text within %s", domain.ErrExtraction, timeout))
		return result
	}

	reportStage(ctx, platform, StageExtracting)
	extraction := r.adapter.ExtractResponse(ctx)
	applyExtraction(&result, waited, extraction)

	if waited.TimedOut {
		result.TimedOut = true
		result.ErrorKind = domain.ErrorKindResponseTimeout
		result.Error = fmt.Errorf("%w: response still changing after %s", domain.ErrResponseTimeout, timeout).Error()
		r.logger.WarnContext(ctx, "returning partial response", "timeout", timeout, "length", len(result.Response))
	}

	result.Status = domain.QueryStatusSuccess
	return result
}

// Login runs only the login flow for platform and persists the session on success.
func (o *Orchestrator) Login(ctx context.Context, platform domain.PlatformID) (state domain.LoginState, err error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.Login", trace.WithAttributes(
		attribute.String("platform", string(platform)),
	))
	defer span.End()

	r := &run{logger: o.logger.With("platform", platform)}
	defer func() {
		o.finish(ctx, r, err != nil)
	}()

	reportStage(ctx, platform, StageOpening)
	if err := o.begin(ctx, platform, r); err != nil {
		span.RecordError(err)
		return domain.LoginStateUnknown, err
	}

	if err := o.login(ctx, r); err != nil {
		span.RecordError(err)
		return domain.LoginStateLoginFailed, err
	}

	return domain.LoginStateLoggedIn, nil
}

// begin fills r as resources open so that finish can release whatever was acquired.
func (o *Orchestrator) begin(ctx context.Context, platform domain.PlatformID, r *run) error {
	profile, err := o.profiles.GetByID(ctx, platform)
	if err != nil {
		return fmt.Errorf("get platform profile: %w", err)
	}
	r.profile = profile

	opts := o.contextOpts
	if record, ok := o.sessions.Load(ctx, platform); ok {
		state := record.State()
		opts.State = &state
		r.logger.DebugContext(ctx, "seeding context with stored session", "created_at", record.CreatedAt, "cookies", len(record.Cookies))
	} else {
		r.logger.DebugContext(ctx, "no usable stored session")
	}

	bctx, err := o.browser.NewContext(ctx, opts)
	if err != nil {
		return fmt.Errorf("open browsing context: %w", err)
	}
	r.context = bctx

	page, err := bctx.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	r.page = page

	adapter, err := o.adapters.New(profile, page)
	if err != nil {
		return fmt.Errorf("build adapter: %w", err)
	}
	r.adapter = adapter

	return nil
}

// login navigates and drives the login state machine. A successful login always re-saves
// the session because cookies rotate.
func (o *Orchestrator) login(ctx context.Context, r *run) error {
	reportStage(ctx, r.profile.ID, StageSigningIn)
	if err := r.adapter.Navigate(ctx); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	state, err := r.adapter.HandleLogin(ctx)
	if err != nil || state != domain.LoginStateLoggedIn {
		if err == nil {
			err = fmt.Errorf("%w: ended in state %s", domain.ErrLoginFailed, state)
		}
		if !errors.Is(err, domain.ErrLoginFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
		}
		r.logger.WarnContext(ctx, "login failed", "state", state, "error", err)
		return err
	}

	live, err := r.context.StorageState(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "read session state", "error", err)
		return nil
	}
	if live.Model == "" {
		live.Model = r.profile.Model
	}
	if err := o.sessions.Save(ctx, r.profile.ID, live); err != nil {
		r.logger.WarnContext(ctx, "save session", "error", err)
	}

	return nil
}

// finish captures diagnostics for failed runs and always releases the context.
func (o *Orchestrator) finish(ctx context.Context, r *run, failed bool) {
	if failed && o.diagnostics != nil && r.page != nil {
		func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					r.logger.WarnContext(ctx, "diagnostics capture panicked", "panic", recovered)
				}
			}()
			o.diagnostics.Capture(ctx, r.profile.ID, r.page)
		}()
	}
	o.release(ctx, r)
}

func (o *Orchestrator) release(ctx context.Context, r *run) {
	if r.context == nil {
		return
	}
	if err := r.context.Close(); err != nil {
		r.logger.WarnContext(ctx, "close browsing context", "error", err)
	}
}

func applyExtraction(result *domain.QueryResult, waited, extraction domain.ExtractionResult) {
	result.Response = extraction.Text
	if result.Response == "" {
		result.Response = waited.Text
	}
	result.Markdown = extraction.Markdown
	if extraction.Model != "" {
		result.Model = extraction.Model
	}
	if extraction.References != nil {
		result.References = extraction.References
	}
	if extraction.SearchResults != nil {
		result.SearchResults = extraction.SearchResults
	}
	result.ReferencesOutcome = extraction.ReferencesOutcome
}
