// Package rod implements the browser driver ports on top of go-rod, with optional stealth pages.
package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const defaultActionTimeout = 15 * time.Second

type Driver struct{}

var _ ports.Driver = (*Driver)(nil)

func NewDriver() *Driver {
	return &Driver{}
}

func (d *Driver) Name() string {
	return "rod"
}

func (d *Driver) Launch(ctx context.Context, opts ports.LaunchOptions) (ports.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		wsURL string
		lnch  *launcher.Launcher
	)
	if opts.RemoteURL != "" {
		wsURL = opts.RemoteURL
	} else {
		lnch = launcher.New().Context(ctx).Headless(opts.Headless)
		if opts.ExecutablePath != "" {
			lnch = lnch.Bin(opts.ExecutablePath)
		}
		if opts.Stealth {
			lnch = lnch.Set("disable-blink-features", "AutomationControlled")
		}
		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		wsURL = u
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if lnch != nil {
			lnch.Cleanup()
		}
		return nil, fmt.Errorf("connect chrome: %w", err)
	}

	return &Browser{browser: b, launcher: lnch, stealth: opts.Stealth}, nil
}

type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	stealth  bool

	closeOnce sync.Once
	closeErr  error
}

var _ ports.Browser = (*Browser)(nil)

func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("create incognito context: %w", err)
	}

	c := &Context{browser: incognito, stealth: b.stealth, opts: opts}
	if opts.State != nil {
		if err := c.AddCookies(ctx, opts.State.Cookies); err != nil {
			_ = incognito.Close()
			return nil, err
		}
		c.origins = opts.State.Origins
	}
	return c, nil
}

func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		if err := b.browser.Close(); err != nil {
			b.closeErr = fmt.Errorf("close chrome: %w", err)
		}
		if b.launcher != nil {
			b.launcher.Cleanup()
		}
	})
	return b.closeErr
}

// Context is an incognito browser context. Local storage is seeded through a document
// start script and collected from open pages, since CDP has no storage-state call.
type Context struct {
	browser *rod.Browser
	stealth bool
	opts    ports.ContextOptions

	mu      sync.Mutex
	origins []domain.Origin
	pages   []*Page
}

var _ ports.BrowserContext = (*Context)(nil)

func (c *Context) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		page *rod.Page
		err  error
	)
	if c.stealth {
		page, err = stealth.Page(c.browser)
	} else {
		page, err = c.browser.Page(protoBlankTarget())
	}
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if c.opts.UserAgent != "" || c.opts.Locale != "" {
		if err := setUserAgent(page, c.opts.UserAgent, c.opts.Locale); err != nil {
			return nil, err
		}
	}
	if c.opts.ViewportWidth > 0 && c.opts.ViewportHeight > 0 {
		if err := setViewport(page, c.opts.ViewportWidth, c.opts.ViewportHeight); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	origins := c.origins
	c.mu.Unlock()
	if len(origins) > 0 {
		script, err := seedScript(origins)
		if err != nil {
			return nil, err
		}
		if _, err := page.EvalOnNewDocument(script); err != nil {
			return nil, fmt.Errorf("install local storage seed: %w", err)
		}
	}

	p := &Page{page: page, owner: c}
	c.mu.Lock()
	c.pages = append(c.pages, p)
	c.mu.Unlock()
	return p, nil
}

func (c *Context) AddCookies(ctx context.Context, cookies []domain.Cookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cookies) == 0 {
		return nil
	}

	if err := c.browser.SetCookies(toCookieParams(cookies)); err != nil {
		return fmt.Errorf("set cookies: %w", err)
	}
	return nil
}

func (c *Context) StorageState(ctx context.Context) (domain.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionState{}, err
	}

	cookies, err := c.browser.GetCookies()
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("read cookies: %w", err)
	}
	state := domain.SessionState{Cookies: fromNetworkCookies(cookies)}

	c.mu.Lock()
	pages := append([]*Page(nil), c.pages...)
	c.mu.Unlock()

	seen := map[string]bool{}
	for _, p := range pages {
		origin, err := p.localStorage(ctx)
		if err != nil || origin.Origin == "" || seen[origin.Origin] {
			continue
		}
		seen[origin.Origin] = true
		state.Origins = append(state.Origins, origin)
	}
	return state, nil
}

func (c *Context) Close() error {
	if err := c.browser.Close(); err != nil {
		return fmt.Errorf("close incognito context: %w", err)
	}
	return nil
}

// seededFlag is set in a tab's sessionStorage once its origin was seeded. Later documents in
// that tab keep whatever local storage the page holds.
const seededFlag = "__aip_storage_seeded"

const seedStorageScript = `(() => {
	const seed = %s;
	const entries = seed[location.origin];
	if (!entries) return;
	try {
		if (sessionStorage.getItem(%q) !== null) return;
		sessionStorage.setItem(%q, "1");
	} catch (e) {
		return;
	}
	for (const [k, v] of entries) {
		try { localStorage.setItem(k, v); } catch (e) {}
	}
})()`

// seedScript writes each origin's stored local storage on the first document of that origin in a tab.
func seedScript(origins []domain.Origin) (string, error) {
	seed, err := json.Marshal(originsToJS(origins))
	if err != nil {
		return "", fmt.Errorf("encode local storage seed: %w", err)
	}
	return fmt.Sprintf(seedStorageScript, seed, seededFlag, seededFlag), nil
}

func originsToJS(origins []domain.Origin) map[string][][2]string {
	out := make(map[string][][2]string, len(origins))
	for _, o := range origins {
		for _, kv := range o.LocalStorage {
			out[o.Origin] = append(out[o.Origin], [2]string{kv.Name, kv.Value})
		}
	}
	return out
}
