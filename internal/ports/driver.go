package ports

import (
	"context"
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type LaunchOptions struct {
	Headless       bool
	Stealth        bool
	ExecutablePath string
	RemoteURL      string
}

type ContextOptions struct {
	// State seeds the context with a stored session. Nil starts a fresh context.
	State          *domain.SessionState
	UserAgent      string
	Locale         string
	ViewportWidth  int
	ViewportHeight int
}

// Driver launches the shared browser process.
type Driver interface {
	Name() string
	Launch(ctx context.Context, opts LaunchOptions) (Browser, error)
}

type Browser interface {
	NewContext(ctx context.Context, opts ContextOptions) (BrowserContext, error)
	Close() error
}

// BrowserContext is an isolated browsing session with its own cookie jar and storage.
type BrowserContext interface {
	NewPage(ctx context.Context) (Page, error)
	AddCookies(ctx context.Context, cookies []domain.Cookie) error
	StorageState(ctx context.Context) (domain.SessionState, error)
	Close() error
}

type NetworkResponse struct {
	URL    string
	Status int
}

type Page interface {
	Goto(ctx context.Context, url string, timeout time.Duration) error
	Reload(ctx context.Context, timeout time.Duration) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	Press(ctx context.Context, selector, key string) error
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	Evaluate(ctx context.Context, script string, arg any) (any, error)
	Screenshot(ctx context.Context) ([]byte, error)
	Content(ctx context.Context) (string, error)
	URL() string
	// Context returns the browsing context that owns the page.
	Context() BrowserContext
	// OnResponse registers fn for every network response the page receives.
	OnResponse(fn func(NetworkResponse))
}

type Element interface {
	TextContent(ctx context.Context) (string, error)
	InnerText(ctx context.Context) (string, error)
	InnerHTML(ctx context.Context) (string, error)
	IsVisible(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
}
