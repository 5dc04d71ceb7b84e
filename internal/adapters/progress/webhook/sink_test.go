package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

func TestSinkPostsProgressEvent(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []map[string]any
		tokens []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(raw, &body))

		mu.Lock()
		bodies = append(bodies, body)
		tokens = append(tokens, r.Header.Get("x-run-token"))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	sink := NewSink(server.URL, WithHeader("x-run-token", "secret"))
	err := sink.Notify(context.Background(), domain.Progress{
		Platform: "gemini",
		Index:    2,
		Total:    5,
		Result: domain.QueryResult{
			Platform:   "gemini",
			Query:      "what is rust",
			Tag:        "lang",
			Status:     domain.QueryStatusSuccess,
			Response:   "Rust is a language.",
			References: []domain.Reference{{Position: 1, URL: "https://rust-lang.org"}},
			Duration:   1500 * time.Millisecond,
			Timestamp:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Attempts:   1,
		},
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, "secret", tokens[0])
	assert.Equal(t, "gemini", bodies[0]["platform"])
	assert.Equal(t, float64(2), bodies[0]["index"])
	assert.Equal(t, float64(5), bodies[0]["total"])
	assert.Equal(t, "success", bodies[0]["status"])
	assert.Equal(t, float64(1500), bodies[0]["duration_ms"])
	assert.Equal(t, float64(19), bodies[0]["response_length"])
	assert.Equal(t, float64(1), bodies[0]["references"])
	assert.Equal(t, "2026-03-01T09:00:00Z", bodies[0]["timestamp"])
}

func TestSinkReportsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	err := NewSink(server.URL).Notify(context.Background(), domain.Progress{Platform: "kimi"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "400")
}
