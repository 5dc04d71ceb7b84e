package fake

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

// Element returns its scripted texts one read at a time; the last value sticks.
type Element struct {
	Texts      []string
	HTML       string
	Visibility []bool
	Err        error
	OnClick    func()

	mu         sync.Mutex
	reads      int
	visChecks  int
	clickCount int
}

var _ ports.Element = (*Element)(nil)

func NewElement(texts ...string) *Element {
	return &Element{Texts: texts}
}

func (e *Element) TextContent(ctx context.Context) (string, error) {
	return e.next(ctx)
}

func (e *Element) InnerText(ctx context.Context) (string, error) {
	return e.next(ctx)
}

func (e *Element) InnerHTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.Err != nil {
		return "", e.Err
	}
	return e.HTML, nil
}

func (e *Element) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Visibility) == 0 {
		return true, nil
	}
	i := e.visChecks
	if i >= len(e.Visibility) {
		i = len(e.Visibility) - 1
	}
	e.visChecks++
	return e.Visibility[i], nil
}

func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	e.clickCount++
	fn := e.OnClick
	e.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clickCount
}

func (e *Element) Reads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reads
}

func (e *Element) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if e.Err != nil {
		return "", e.Err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Texts) == 0 {
		return "", nil
	}
	i := e.reads
	if i >= len(e.Texts) {
		i = len(e.Texts) - 1
	}
	e.reads++
	return e.Texts[i], nil
}

// Page resolves selectors against a fixed table that hooks may rewrite as the script advances.
type Page struct {
	Markup        string
	Image         []byte
	GotoErr       error
	ReloadErr     error
	FillErr       error
	ClickErr      error
	ContentErr    error
	ScreenshotErr error
	Eval          func(script string, arg any) (any, error)

	AfterFill   func(p *Page, selector, value string)
	AfterClick  func(p *Page, selector string)
	AfterPress  func(p *Page, selector, key string)
	AfterReload func(p *Page)

	mu       sync.Mutex
	owner    *Context
	url      string
	elements map[string][]*Element
	handlers []func(ports.NetworkResponse)
	gotos    []string
	reloads  int
	fills    map[string]string
	clicks   []string
	presses  []string
	evals    []any
}

var _ ports.Page = (*Page)(nil)

func NewPage() *Page {
	return &Page{elements: map[string][]*Element{}, fills: map[string]string{}}
}

// Set replaces the elements returned for selector.
func (p *Page) Set(selector string, elements ...*Element) *Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.elements == nil {
		p.elements = map[string][]*Element{}
	}
	p.elements[selector] = elements
	return p
}

func (p *Page) Goto(ctx context.Context, url string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.gotos = append(p.gotos, url)
	p.url = url
	return p.GotoErr
}

func (p *Page) Reload(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.reloads++
	hook := p.AfterReload
	err := p.ReloadErr
	p.mu.Unlock()

	if hook != nil {
		hook(p)
	}
	return err
}

func (p *Page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.FillErr != nil {
		p.mu.Unlock()
		return p.FillErr
	}
	if p.fills == nil {
		p.fills = map[string]string{}
	}
	p.fills[selector] = value
	hook := p.AfterFill
	p.mu.Unlock()

	if hook != nil {
		hook(p, selector, value)
	}
	return nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.ClickErr != nil {
		p.mu.Unlock()
		return p.ClickErr
	}
	p.clicks = append(p.clicks, selector)
	hook := p.AfterClick
	p.mu.Unlock()

	if hook != nil {
		hook(p, selector)
	}
	return nil
}

func (p *Page) Press(ctx context.Context, selector, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.presses = append(p.presses, selector+":"+key)
	hook := p.AfterPress
	p.mu.Unlock()

	if hook != nil {
		hook(p, selector, key)
	}
	return nil
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	found := p.elements[selector]
	out := make([]ports.Element, 0, len(found))
	for _, e := range found {
		out = append(out, e)
	}
	return out, nil
}

func (p *Page) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.evals = append(p.evals, arg)
	fn := p.Eval
	p.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(script, arg)
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.ScreenshotErr != nil {
		return nil, p.ScreenshotErr
	}
	if p.Image == nil {
		return []byte("\x89PNG fake"), nil
	}
	return p.Image, nil
}

func (p *Page) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.ContentErr != nil {
		return "", p.ContentErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Markup, nil
}

func (p *Page) SetMarkup(markup string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Markup = markup
}

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Page) Context() ports.BrowserContext {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.owner == nil {
		return nil
	}
	return p.owner
}

func (p *Page) OnResponse(fn func(ports.NetworkResponse)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, fn)
}

// Emit delivers a network response to every registered handler.
func (p *Page) Emit(url string, status int) {
	p.mu.Lock()
	handlers := slices.Clone(p.handlers)
	p.mu.Unlock()

	for _, h := range handlers {
		h(ports.NetworkResponse{URL: url, Status: status})
	}
}

func (p *Page) Gotos() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.gotos...)
}

func (p *Page) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *Page) Filled(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fills[selector]
}

func (p *Page) Clicks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.clicks...)
}

func (p *Page) Presses() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.presses...)
}

func (p *Page) EvalArgs() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.evals...)
}

func (p *Page) String() string {
	return fmt.Sprintf("fake page %s", p.URL())
}
