package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	artifactsfile "github.com/bnema/aiprobe-cli/internal/adapters/artifacts/file"
	playwrightdriver "github.com/bnema/aiprobe-cli/internal/adapters/driver/playwright"
	roddriver "github.com/bnema/aiprobe-cli/internal/adapters/driver/rod"
	"github.com/bnema/aiprobe-cli/internal/adapters/markup"
	"github.com/bnema/aiprobe-cli/internal/adapters/platforms"
	profilesrepo "github.com/bnema/aiprobe-cli/internal/adapters/repo/profiles"
	chainstore "github.com/bnema/aiprobe-cli/internal/adapters/secrets/chain"
	sessionfile "github.com/bnema/aiprobe-cli/internal/adapters/session/file"
	"github.com/bnema/aiprobe-cli/internal/application"
	"github.com/bnema/aiprobe-cli/internal/config"
	"github.com/bnema/aiprobe-cli/internal/ports"
	"github.com/bnema/aiprobe-cli/internal/telemetry"
)

const secretEnvPrefix = "AIP"

type app struct {
	v        *viper.Viper
	settings config.Settings
	profiles *profilesrepo.Repository
	secrets  ports.SecretStore
	clock    ports.Clock
	logger   *slog.Logger
}

// newDriver picks the browser automation backend. Tests replace it with a scripted driver.
var newDriver = func(settings config.Settings) ports.Driver {
	if settings.Browser.Driver == config.DriverRod {
		return roddriver.NewDriver()
	}
	return playwrightdriver.NewDriver(playwrightdriver.WithInstall(settings.Browser.Install))
}

func wireApp() (*app, error) {
	v, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("wire settings: %w", err)
	}
	settings, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	profiles, err := profilesrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	secrets, err := chainstore.NewEnvFirstWithPassFallback(secretEnvPrefix, settings.PassStoreDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		v:        v,
		settings: settings,
		profiles: profiles,
		secrets:  secrets,
		clock:    ports.SystemClock{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// configureLogging replaces the discard logger once flags are parsed.
func (a *app) configureLogging(w io.Writer, level string, asJSON bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	a.logger = slog.New(handler)
	slog.SetDefault(a.logger)
	return nil
}

func (a *app) sessionStore() (*sessionfile.Store, error) {
	secret := a.settings.SessionSecret
	if secret == "" {
		a.logger.Warn("AIP_SESSION_SECRET is not set, sessions are encrypted with a machine-local fallback secret")
		secret = sessionfile.FallbackSecret()
	}

	store, err := sessionfile.NewStore(a.settings.SessionsDir, secret,
		sessionfile.WithClock(a.clock),
		sessionfile.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}
	return store, nil
}

// runtime owns the shared browser and the otel providers; Close must run before the process exits.
type runtime struct {
	browser      *application.SharedBrowser
	sessions     *sessionfile.Store
	orchestrator *application.Orchestrator
	telemetry    *telemetry.Telemetry
}

func (a *app) newRuntime(ctx context.Context) (*runtime, error) {
	sessions, err := a.sessionStore()
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.Setup(ctx, a.settings.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("wire telemetry: %w", err)
	}
	if tel.Enabled() {
		a.logger.DebugContext(ctx, "exporting telemetry", "endpoint", a.settings.Telemetry.Endpoint, "protocol", a.settings.Telemetry.Protocol)
	}

	b := a.settings.Browser
	browser := application.NewSharedBrowser(newDriver(a.settings), ports.LaunchOptions{
		Headless:       b.Headless,
		Stealth:        b.Stealth,
		ExecutablePath: b.ExecutablePath,
		RemoteURL:      b.RemoteURL,
	}, a.logger)

	registry := platforms.NewDefaultRegistry(platforms.Deps{
		Logger:  a.logger,
		Clock:   a.clock,
		Secrets: a.secrets,
		Markup:  markup.NewConverter(),
	})

	diagnostics := artifactsfile.NewSink(a.settings.ArtifactsDir,
		artifactsfile.WithClock(a.clock),
		artifactsfile.WithLogger(a.logger),
	)

	opts := []application.OrchestratorOption{
		application.WithClock(a.clock),
		application.WithLogger(a.logger),
		application.WithDiagnostics(diagnostics),
		application.WithResponseTimeout(a.settings.ResponseTimeout),
		application.WithContextOptions(ports.ContextOptions{
			UserAgent:      b.UserAgent,
			Locale:         b.Locale,
			ViewportWidth:  b.ViewportWidth,
			ViewportHeight: b.ViewportHeight,
		}),
	}
	if tel.Enabled() {
		opts = append(opts, application.WithTracerProvider(tel.TracerProvider))
	}
	orchestrator := application.NewOrchestrator(browser, sessions, a.profiles, registry, opts...)

	return &runtime{browser: browser, sessions: sessions, orchestrator: orchestrator, telemetry: tel}, nil
}

const telemetryFlushTimeout = 5 * time.Second

func (r *runtime) Close(ctx context.Context, logger *slog.Logger) {
	if err := r.browser.Close(); err != nil {
		logger.WarnContext(ctx, "shutdown browser", "error", err)
	}

	// ctx may already be cancelled by an interrupt; pending spans still get a flush window.
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryFlushTimeout)
	defer cancel()
	if err := r.telemetry.Shutdown(flushCtx); err != nil {
		logger.WarnContext(ctx, "flush telemetry", "error", err)
	}
}
