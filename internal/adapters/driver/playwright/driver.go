// Package playwright implements the browser driver ports on top of playwright-go.
package playwright

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const automationFlag = "--disable-blink-features=AutomationControlled"

type Driver struct {
	install bool
}

var _ ports.Driver = (*Driver)(nil)

type Option func(*Driver)

// WithInstall downloads the playwright browsers before the first launch.
func WithInstall(install bool) Option {
	return func(d *Driver) {
		d.install = install
	}
}

func NewDriver(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Name() string {
	return "playwright"
}

func (d *Driver) Launch(ctx context.Context, opts ports.LaunchOptions) (ports.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runOpts := &pw.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}
	if d.install {
		if err := pw.Install(runOpts); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	runtime, err := pw.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	var browser pw.Browser
	if opts.RemoteURL != "" {
		browser, err = runtime.Chromium.ConnectOverCDP(opts.RemoteURL)
	} else {
		launch := pw.BrowserTypeLaunchOptions{Headless: pw.Bool(opts.Headless)}
		if opts.ExecutablePath != "" {
			launch.ExecutablePath = pw.String(opts.ExecutablePath)
		}
		if opts.Stealth {
			launch.Args = []string{automationFlag}
		}
		browser, err = runtime.Chromium.Launch(launch)
	}
	if err != nil {
		_ = runtime.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &Browser{runtime: runtime, browser: browser, stealth: opts.Stealth}, nil
}

type Browser struct {
	runtime *pw.Playwright
	browser pw.Browser
	stealth bool

	closeOnce sync.Once
	closeErr  error
}

var _ ports.Browser = (*Browser)(nil)

func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contextOpts := pw.BrowserNewContextOptions{}
	if opts.State != nil {
		contextOpts.StorageState = toStorageState(*opts.State)
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = pw.String(opts.UserAgent)
	}
	if opts.Locale != "" {
		contextOpts.Locale = pw.String(opts.Locale)
	}
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		contextOpts.Viewport = &pw.Size{Width: opts.ViewportWidth, Height: opts.ViewportHeight}
	}

	bc, err := b.browser.NewContext(contextOpts)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	if b.stealth {
		if err := bc.AddInitScript(pw.Script{Content: pw.String(hideWebdriverScript)}); err != nil {
			_ = bc.Close()
			return nil, fmt.Errorf("install init script: %w", err)
		}
	}

	return &Context{bc: bc}, nil
}

func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		var errs []error
		if err := b.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
		if err := b.runtime.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
		b.closeErr = errors.Join(errs...)
	})
	return b.closeErr
}

const hideWebdriverScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

type Context struct {
	bc pw.BrowserContext
}

var _ ports.BrowserContext = (*Context)(nil)

func (c *Context) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := c.bc.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return &Page{page: page, owner: c}, nil
}

func (c *Context) AddCookies(ctx context.Context, cookies []domain.Cookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cookies) == 0 {
		return nil
	}

	if err := c.bc.AddCookies(toOptionalCookies(cookies)); err != nil {
		return fmt.Errorf("add cookies: %w", err)
	}
	return nil
}

func (c *Context) StorageState(ctx context.Context) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	state, err := c.bc.StorageState()
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("read storage state: %w", err)
	}
	return fromStorageState(state), nil
}

func (c *Context) Close() error {
	if err := c.bc.Close(); err != nil {
		return fmt.Errorf("close browser context: %w", err)
	}
	return nil
}

type Page struct {
	page  pw.Page
	owner *Context
}

var _ ports.Page = (*Page)(nil)

func (p *Page) Goto(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := pw.PageGotoOptions{WaitUntil: pw.WaitUntilStateDomcontentloaded}
	if timeout > 0 {
		opts.Timeout = pw.Float(millis(timeout))
	}
	if _, err := p.page.Goto(url, opts); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (p *Page) Reload(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := pw.PageReloadOptions{WaitUntil: pw.WaitUntilStateDomcontentloaded}
	if timeout > 0 {
		opts.Timeout = pw.Float(millis(timeout))
	}
	if _, err := p.page.Reload(opts); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (p *Page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Click(selector); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Press(ctx context.Context, selector, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.page.Press(selector, key); err != nil {
		return fmt.Errorf("press %s on %s: %w", key, selector, err)
	}
	return nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	out := make([]ports.Element, 0, len(handles))
	for _, h := range handles {
		out = append(out, &Element{handle: h})
	}
	return out, nil
}

func (p *Page) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		value any
		err   error
	)
	if arg == nil {
		value, err = p.page.Evaluate(script)
	} else {
		value, err = p.page.Evaluate(script, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return value, nil
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := p.page.Screenshot(pw.PageScreenshotOptions{FullPage: pw.Bool(true)})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

func (p *Page) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	markup, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return markup, nil
}

func (p *Page) URL() string {
	return p.page.URL()
}

func (p *Page) Context() ports.BrowserContext {
	return p.owner
}

func (p *Page) OnResponse(fn func(ports.NetworkResponse)) {
	p.page.OnResponse(func(resp pw.Response) {
		fn(ports.NetworkResponse{URL: resp.URL(), Status: resp.Status()})
	})
}

type Element struct {
	handle pw.ElementHandle
}

var _ ports.Element = (*Element)(nil)

func (e *Element) TextContent(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.handle.TextContent()
}

func (e *Element) InnerText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.handle.InnerText()
}

func (e *Element) InnerHTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.handle.InnerHTML()
}

func (e *Element) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.handle.IsVisible()
}

func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.handle.Click()
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
