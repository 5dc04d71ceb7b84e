// Package config resolves application settings from ~/.aiprobe/config.toml and AIP_* env vars.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".aiprobe"
	envPrefix  = "AIP"
)

const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
)

type Browser struct {
	Driver         string
	Install        bool
	Headless       bool
	Stealth        bool
	ExecutablePath string
	RemoteURL      string
	UserAgent      string
	Locale         string
	ViewportWidth  int
	ViewportHeight int
}

type Batch struct {
	RetryCount        int
	RetryDelay        time.Duration
	MinResponseLength int
	PaceMin           time.Duration
	PaceMax           time.Duration
}

type Settings struct {
	HomeDir         string
	SessionsDir     string
	SessionSecret   string
	ProfilesPath    string
	OutputDir       string
	ArtifactsDir    string
	HistoryPath     string
	ResponseTimeout time.Duration
	WebhookURL      string
	WebhookToken    string
	PassStoreDir    string
	LogLevel        string
	LogJSON         bool
	Browser         Browser
	Batch           Batch
	Telemetry       Telemetry
}

// Telemetry selects where otel traces and metrics go. No endpoint keeps otel on its no-op providers.
type Telemetry struct {
	Endpoint       string
	Protocol       string
	Headers        map[string]string
	MetricInterval time.Duration
}

const (
	OTLPHTTP = "http"
	OTLPGRPC = "grpc"
)

// New returns a viper instance with defaults, the config file search path and env binding set.
func New() (*viper.Viper, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, configDir)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(base)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("home", base)
	v.SetDefault("sessions.dir", filepath.Join(base, "sessions"))
	v.SetDefault("profiles.path", filepath.Join(base, "profiles.toml"))
	v.SetDefault("output.dir", filepath.Join(base, "output"))
	v.SetDefault("artifacts.dir", filepath.Join(base, "artifacts"))
	v.SetDefault("history.path", filepath.Join(base, "history.db"))
	v.SetDefault("browser.driver", DriverPlaywright)
	v.SetDefault("browser.install", false)
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.stealth", true)
	v.SetDefault("browser.locale", "en-US")
	v.SetDefault("browser.viewport_width", 1366)
	v.SetDefault("browser.viewport_height", 900)
	v.SetDefault("batch.retry_count", 3)
	v.SetDefault("batch.retry_delay", 5*time.Second)
	v.SetDefault("batch.min_response_length", 10)
	v.SetDefault("pacing.min", 2*time.Second)
	v.SetDefault("pacing.max", 7*time.Second)
	v.SetDefault("response.default_timeout", 2*time.Minute)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("telemetry.protocol", OTLPHTTP)
	v.SetDefault("telemetry.metric_interval", 10*time.Second)

	if err := v.BindEnv("sessions.secret", "AIP_SESSION_SECRET", "AIP_SESSIONS_SECRET"); err != nil {
		return nil, fmt.Errorf("bind session secret env: %w", err)
	}

	return v, nil
}

// Load reads the config file if present and resolves every setting.
func Load(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	s := Settings{
		HomeDir:         v.GetString("home"),
		SessionsDir:     v.GetString("sessions.dir"),
		SessionSecret:   v.GetString("sessions.secret"),
		ProfilesPath:    v.GetString("profiles.path"),
		OutputDir:       v.GetString("output.dir"),
		ArtifactsDir:    v.GetString("artifacts.dir"),
		HistoryPath:     v.GetString("history.path"),
		ResponseTimeout: v.GetDuration("response.default_timeout"),
		WebhookURL:      v.GetString("progress.webhook_url"),
		WebhookToken:    v.GetString("progress.webhook_token"),
		PassStoreDir:    v.GetString("secrets.pass_dir"),
		LogLevel:        v.GetString("log.level"),
		LogJSON:         v.GetBool("log.json"),
		Browser: Browser{
			Driver:         strings.ToLower(strings.TrimSpace(v.GetString("browser.driver"))),
			Install:        v.GetBool("browser.install"),
			Headless:       v.GetBool("browser.headless"),
			Stealth:        v.GetBool("browser.stealth"),
			ExecutablePath: v.GetString("browser.executable_path"),
			RemoteURL:      v.GetString("browser.remote_url"),
			UserAgent:      v.GetString("browser.user_agent"),
			Locale:         v.GetString("browser.locale"),
			ViewportWidth:  v.GetInt("browser.viewport_width"),
			ViewportHeight: v.GetInt("browser.viewport_height"),
		},
		Batch: Batch{
			RetryCount:        v.GetInt("batch.retry_count"),
			RetryDelay:        v.GetDuration("batch.retry_delay"),
			MinResponseLength: v.GetInt("batch.min_response_length"),
			PaceMin:           v.GetDuration("pacing.min"),
			PaceMax:           v.GetDuration("pacing.max"),
		},
		Telemetry: Telemetry{
			Endpoint:       strings.TrimSpace(v.GetString("telemetry.endpoint")),
			Protocol:       strings.ToLower(strings.TrimSpace(v.GetString("telemetry.protocol"))),
			Headers:        v.GetStringMapString("telemetry.headers"),
			MetricInterval: v.GetDuration("telemetry.metric_interval"),
		},
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch s.Browser.Driver {
	case DriverPlaywright, DriverRod:
	default:
		return fmt.Errorf("browser.driver: unsupported driver %q (want %s or %s)", s.Browser.Driver, DriverPlaywright, DriverRod)
	}
	if s.Batch.RetryCount < 1 {
		return fmt.Errorf("batch.retry_count must be at least 1, got %d", s.Batch.RetryCount)
	}
	if s.Batch.PaceMax < s.Batch.PaceMin {
		return fmt.Errorf("pacing.max (%s) must not be below pacing.min (%s)", s.Batch.PaceMax, s.Batch.PaceMin)
	}
	if s.ResponseTimeout <= 0 {
		return fmt.Errorf("response.default_timeout must be positive")
	}
	switch s.Telemetry.Protocol {
	case "", OTLPHTTP, OTLPGRPC:
	default:
		return fmt.Errorf("telemetry.protocol: unsupported protocol %q (want %s or %s)", s.Telemetry.Protocol, OTLPHTTP, OTLPGRPC)
	}
	if s.Telemetry.Endpoint != "" && s.Telemetry.MetricInterval <= 0 {
		return fmt.Errorf("telemetry.metric_interval must be positive")
	}
	return nil
}
