package rod

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

func TestSeedScriptGuardsPerTab(t *testing.T) {
	t.Parallel()

	script, err := seedScript([]domain.Origin{{
		Origin:       "https://chat.example.com",
		LocalStorage: []domain.NameValue{{Name: "token", Value: `a"b`}},
	}})
	require.NoError(t, err)

	assert.Contains(t, script, `{"https://chat.example.com":[["token","a\"b"]]}`)
	assert.Contains(t, script, `sessionStorage.getItem("`+seededFlag+`")`)
	assert.Contains(t, script, `sessionStorage.setItem("`+seededFlag+`", "1")`)
	assert.Less(t, strings.Index(script, "sessionStorage.setItem"), strings.Index(script, "localStorage.setItem"))
}

// A value written after the first load must survive a reload instead of being replaced by the
// stored session again.
func TestContextSeedDoesNotOverwriteAfterReload(t *testing.T) {
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chrome or chromium on this machine")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<!doctype html><title>chat</title><p>ok</p>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	browser, err := NewDriver().Launch(ctx, ports.LaunchOptions{Headless: true, ExecutablePath: bin})
	require.NoError(t, err)
	defer browser.Close()

	bctx, err := browser.NewContext(ctx, ports.ContextOptions{State: &domain.SessionState{
		Origins: []domain.Origin{{
			Origin:       srv.URL,
			LocalStorage: []domain.NameValue{{Name: "token", Value: "old"}},
		}},
	}})
	require.NoError(t, err)
	defer bctx.Close()

	page, err := bctx.NewPage(ctx)
	require.NoError(t, err)
	require.NoError(t, page.Goto(ctx, srv.URL, 10*time.Second))

	got, err := page.Evaluate(ctx, `() => localStorage.getItem("token")`, nil)
	require.NoError(t, err)
	assert.Equal(t, "old", got)

	_, err = page.Evaluate(ctx, `(v) => localStorage.setItem("token", v)`, "new")
	require.NoError(t, err)
	require.NoError(t, page.Reload(ctx, 10*time.Second))

	got, err = page.Evaluate(ctx, `() => localStorage.getItem("token")`, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}
