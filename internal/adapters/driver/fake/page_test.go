package fake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

func TestPageEmitDeliversToHandlers(t *testing.T) {
	t.Parallel()

	page := NewPage()
	var got []ports.NetworkResponse
	page.OnResponse(func(r ports.NetworkResponse) { got = append(got, r) })
	page.OnResponse(func(r ports.NetworkResponse) { got = append(got, r) })

	page.Emit("https://chat.example.com/api/auth", 200)

	require.Len(t, got, 2)
	assert.Equal(t, ports.NetworkResponse{URL: "https://chat.example.com/api/auth", Status: 200}, got[0])
}

func TestPageEmitAllowsHandlersToRegister(t *testing.T) {
	t.Parallel()

	page := NewPage()
	late := 0
	page.OnResponse(func(ports.NetworkResponse) {
		page.OnResponse(func(ports.NetworkResponse) { late++ })
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		page.Emit("https://chat.example.com/", 200)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked while a handler registered another")
	}
	assert.Zero(t, late)

	page.Emit("https://chat.example.com/", 200)
	assert.Equal(t, 1, late)
}

func TestPageReloadCounts(t *testing.T) {
	t.Parallel()

	page := NewPage()
	require.NoError(t, page.Reload(context.Background(), time.Second))
	assert.Equal(t, 1, page.Reloads())
}
