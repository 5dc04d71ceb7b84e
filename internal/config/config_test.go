package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AIP_SESSION_SECRET", "")

	v, err := New()
	require.NoError(t, err)
	s, err := Load(v)
	require.NoError(t, err)

	base := filepath.Join(home, ".aiprobe")
	assert.Equal(t, filepath.Join(base, "sessions"), s.SessionsDir)
	assert.Equal(t, filepath.Join(base, "profiles.toml"), s.ProfilesPath)
	assert.Equal(t, filepath.Join(base, "history.db"), s.HistoryPath)
	assert.Equal(t, DriverPlaywright, s.Browser.Driver)
	assert.True(t, s.Browser.Stealth)
	assert.Equal(t, 3, s.Batch.RetryCount)
	assert.Equal(t, 5*time.Second, s.Batch.RetryDelay)
	assert.Equal(t, 10, s.Batch.MinResponseLength)
	assert.Equal(t, 2*time.Second, s.Batch.PaceMin)
	assert.Equal(t, 7*time.Second, s.Batch.PaceMax)
	assert.Equal(t, 2*time.Minute, s.ResponseTimeout)
	assert.Empty(t, s.SessionSecret)
	assert.Empty(t, s.Telemetry.Endpoint)
	assert.Equal(t, OTLPHTTP, s.Telemetry.Protocol)
	assert.Equal(t, 10*time.Second, s.Telemetry.MetricInterval)
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".aiprobe"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".aiprobe", "config.toml"), []byte(`
[browser]
driver = "rod"
headless = true

[batch]
retry_count = 5
retry_delay = "1s"

[progress]
webhook_url = "https://hooks.example.com/aip"

[telemetry]
protocol = "grpc"

[telemetry.headers]
authorization = "Bearer t"
`), 0o600))
	t.Setenv("AIP_SESSION_SECRET", "s3cret")
	t.Setenv("AIP_PACING_MAX", "10s")
	t.Setenv("AIP_TELEMETRY_ENDPOINT", "http://collector:4317")

	v, err := New()
	require.NoError(t, err)
	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DriverRod, s.Browser.Driver)
	assert.True(t, s.Browser.Headless)
	assert.Equal(t, 5, s.Batch.RetryCount)
	assert.Equal(t, time.Second, s.Batch.RetryDelay)
	assert.Equal(t, 10*time.Second, s.Batch.PaceMax)
	assert.Equal(t, "https://hooks.example.com/aip", s.WebhookURL)
	assert.Equal(t, "s3cret", s.SessionSecret)
	assert.Equal(t, "http://collector:4317", s.Telemetry.Endpoint)
	assert.Equal(t, OTLPGRPC, s.Telemetry.Protocol)
	assert.Equal(t, map[string]string{"authorization": "Bearer t"}, s.Telemetry.Headers)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	t.Parallel()

	valid := Settings{
		ResponseTimeout: time.Minute,
		Browser:         Browser{Driver: DriverRod},
		Batch:           Batch{RetryCount: 1, PaceMin: time.Second, PaceMax: 2 * time.Second},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"driver", func(s *Settings) { s.Browser.Driver = "selenium" }, "unsupported driver"},
		{"retries", func(s *Settings) { s.Batch.RetryCount = 0 }, "retry_count"},
		{"pacing", func(s *Settings) { s.Batch.PaceMax = 0 }, "pacing.max"},
		{"timeout", func(s *Settings) { s.ResponseTimeout = 0 }, "default_timeout"},
		{"otlp protocol", func(s *Settings) { s.Telemetry.Protocol = "zipkin" }, "telemetry.protocol"},
		{"metric interval", func(s *Settings) { s.Telemetry.Endpoint = "http://collector:4318" }, "metric_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid
			tt.mutate(&s)
			assert.ErrorContains(t, s.Validate(), tt.want)
		})
	}
}
