// Package fake is a scripted in-memory browser used by adapter, orchestrator and batch tests.
package fake

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

var ErrClosed = errors.New("fake browser closed")

type Driver struct {
	Browser   *Browser
	LaunchErr error
	launches  int
}

var _ ports.Driver = (*Driver)(nil)

func NewDriver(browser *Browser) *Driver {
	return &Driver{Browser: browser}
}

func (d *Driver) Name() string {
	return "fake"
}

func (d *Driver) Launch(ctx context.Context, _ ports.LaunchOptions) (ports.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.LaunchErr != nil {
		return nil, d.LaunchErr
	}
	d.launches++
	return d.Browser, nil
}

func (d *Driver) Launches() int {
	return d.launches
}

// Browser hands out one Context per NewContext call; each context opens pages built by NewPage.
type Browser struct {
	NewPage       func() *Page
	NewContextErr error

	mu       sync.Mutex
	contexts []*Context
	closed   bool
}

var _ ports.Browser = (*Browser)(nil)

func NewBrowser(newPage func() *Page) *Browser {
	return &Browser{NewPage: newPage}
}

func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if b.NewContextErr != nil {
		return nil, b.NewContextErr
	}

	c := &Context{browser: b}
	if opts.State != nil {
		c.seeded = true
		c.state = cloneState(*opts.State)
	}
	b.contexts = append(b.contexts, c)
	return c, nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *Browser) Contexts() []*Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Context(nil), b.contexts...)
}

func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type Context struct {
	browser *Browser

	NewPageErr      error
	StorageStateErr error

	mu     sync.Mutex
	seeded bool
	state  domain.SessionState
	added  []domain.Cookie
	pages  []*Page
	closed bool
}

var _ ports.BrowserContext = (*Context)(nil)

func (c *Context) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.NewPageErr != nil {
		return nil, c.NewPageErr
	}

	var page *Page
	if c.browser.NewPage != nil {
		page = c.browser.NewPage()
	}
	if page == nil {
		page = NewPage()
	}
	page.owner = c
	c.pages = append(c.pages, page)
	return page, nil
}

func (c *Context) AddCookies(ctx context.Context, cookies []domain.Cookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, cookies...)
	c.state.Cookies = append(c.state.Cookies, cookies...)
	return nil
}

func (c *Context) StorageState(ctx context.Context) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.StorageStateErr != nil {
		return domain.SessionState{}, c.StorageStateErr
	}
	return cloneState(c.state), nil
}

// SetState replaces the live cookie and storage state, as a site would after login.
func (c *Context) SetState(state domain.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = cloneState(state)
}

func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Context) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Seeded reports whether the context was created from a stored session.
func (c *Context) Seeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seeded
}

func (c *Context) AddedCookies() []domain.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Cookie(nil), c.added...)
}

func (c *Context) Pages() []*Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Page(nil), c.pages...)
}

func cloneState(s domain.SessionState) domain.SessionState {
	out := domain.SessionState{Model: s.Model}
	out.Cookies = append([]domain.Cookie(nil), s.Cookies...)
	for _, o := range s.Origins {
		out.Origins = append(out.Origins, domain.Origin{
			Origin:       o.Origin,
			LocalStorage: append([]domain.NameValue(nil), o.LocalStorage...),
		})
	}
	return out
}
