package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/bnema/aiprobe-cli/internal/config"
)

func restoreGlobals(t *testing.T) {
	t.Helper()

	tp, mp := otel.GetTracerProvider(), otel.GetMeterProvider()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
	})
}

func TestSetupWithoutEndpointIsDisabled(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	tel, err := Setup(context.Background(), config.Telemetry{Protocol: config.OTLPHTTP})
	require.NoError(t, err)
	assert.False(t, tel.Enabled())
	assert.Same(t, before, otel.GetTracerProvider())
	assert.NoError(t, tel.Shutdown(context.Background()))

	var none *Telemetry
	assert.NoError(t, none.Shutdown(context.Background()))
}

func TestSetupExportsSpansAndMetricsOverHTTP(t *testing.T) {
	restoreGlobals(t)

	var (
		mu      sync.Mutex
		paths   []string
		headers []string
	)
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		headers = append(headers, r.Header.Get("X-Collector-Token"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	tel, err := Setup(context.Background(), config.Telemetry{
		Endpoint: collector.URL,
		Protocol: config.OTLPHTTP,
		Headers:  map[string]string{"X-Collector-Token": "t0k"},
	})
	require.NoError(t, err)
	require.True(t, tel.Enabled())

	_, span := otel.Tracer("test").Start(context.Background(), "orchestrator.RunQuery")
	span.End()
	counter, err := otel.Meter("test").Int64Counter("aiprobe_query_results_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	require.NoError(t, tel.Shutdown(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, paths, "/v1/traces")
	assert.Contains(t, paths, "/v1/metrics")
	for _, h := range headers {
		assert.Equal(t, "t0k", h)
	}
}

func TestSignalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		endpoint string
		want     string
		wantErr  string
	}{
		{endpoint: "http://localhost:4318", want: "http://localhost:4318/v1/traces"},
		{endpoint: "https://otel.example.com/", want: "https://otel.example.com/v1/traces"},
		{endpoint: "https://otel.example.com/custom/traces", want: "https://otel.example.com/custom/traces"},
		{endpoint: "localhost:4318", wantErr: "http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			t.Parallel()

			got, err := signalURL(tt.endpoint, tracesPath)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
