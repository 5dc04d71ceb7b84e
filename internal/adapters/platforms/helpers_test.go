package platforms

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/adapters/driver/fake"
	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
	"github.com/bnema/aiprobe-cli/internal/ports/mocks"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testDeps() (Deps, *mocks.ManualClock) {
	clock := mocks.NewManualClock(testStart)
	return Deps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  clock,
	}, clock
}

func testProfile(id string) domain.PlatformProfile {
	return domain.PlatformProfile{
		ID:   domain.PlatformID(id),
		URL:  "https://chatgpt.com/",
		Auth: domain.AuthDescriptor{Kind: domain.AuthKindCookie},
		Selectors: domain.SelectorDescriptor{
			Input:    "#prompt",
			Submit:   "#send",
			Response: ".answer",
			LoggedIn: "#profile",
		},
		PollInterval:       time.Second,
		StabilityThreshold: 3,
		LoginTimeout:       10 * time.Second,
	}
}

// openPage returns a fake page that belongs to a fake browsing context, as the orchestrator would open it.
func openPage(t *testing.T) (*fake.Page, *fake.Context) {
	t.Helper()

	page := fake.NewPage()
	browser := fake.NewBrowser(func() *fake.Page { return page })
	bc, err := browser.NewContext(context.Background(), ports.ContextOptions{})
	require.NoError(t, err)
	p, err := bc.NewPage(context.Background())
	require.NoError(t, err)

	return p.(*fake.Page), bc.(*fake.Context)
}
