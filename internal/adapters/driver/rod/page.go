package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

type Page struct {
	page  *rod.Page
	owner *Context
}

var _ ports.Page = (*Page)(nil)

func (p *Page) Goto(ctx context.Context, url string, timeout time.Duration) error {
	page := p.bound(ctx, timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (p *Page) Reload(ctx context.Context, timeout time.Duration) error {
	page := p.bound(ctx, timeout)
	if err := page.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load after reload: %w", err)
	}
	return nil
}

func (p *Page) Fill(ctx context.Context, selector, value string) error {
	el, err := p.bound(ctx, defaultActionTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		// contenteditable hosts reject text selection; input still replaces focus content
		_ = el.Focus()
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	el, err := p.bound(ctx, defaultActionTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (p *Page) Press(ctx context.Context, selector, key string) error {
	page := p.bound(ctx, defaultActionTimeout)
	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus %s: %w", selector, err)
	}
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("press %s: unsupported key %q", selector, key)
	}
	if err := page.Keyboard.Type(k); err != nil {
		return fmt.Errorf("press %s on %s: %w", key, selector, err)
	}
	return nil
}

var keys = map[string]input.Key{
	"Enter":  input.Enter,
	"Tab":    input.Tab,
	"Escape": input.Escape,
}

func (p *Page) QueryAll(ctx context.Context, selector string) ([]ports.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	els, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	out := make([]ports.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el})
	}
	return out, nil
}

func (p *Page) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var args []interface{}
	if arg != nil {
		args = append(args, arg)
	}
	res, err := p.page.Context(ctx).Eval(script, args...)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return res.Value.Val(), nil
}

func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

func (p *Page) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	markup, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return markup, nil
}

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *Page) Context() ports.BrowserContext {
	return p.owner
}

func (p *Page) OnResponse(fn func(ports.NetworkResponse)) {
	if err := (proto.NetworkEnable{}).Call(p.page); err != nil {
		return
	}
	go p.page.EachEvent(func(e *proto.NetworkResponseReceived) {
		if e.Response == nil {
			return
		}
		fn(ports.NetworkResponse{URL: e.Response.URL, Status: e.Response.Status})
	})()
}

func (p *Page) localStorage(ctx context.Context) (domain.Origin, error) {
	res, err := p.page.Context(ctx).Eval(`() => ({
		origin: location.origin,
		entries: Object.entries(localStorage),
	})`)
	if err != nil {
		return domain.Origin{}, err
	}

	var raw struct {
		Origin  string      `json:"origin"`
		Entries [][2]string `json:"entries"`
	}
	if err := res.Value.Unmarshal(&raw); err != nil {
		return domain.Origin{}, err
	}
	if raw.Origin == "null" {
		return domain.Origin{}, nil
	}

	origin := domain.Origin{Origin: raw.Origin}
	for _, kv := range raw.Entries {
		origin.LocalStorage = append(origin.LocalStorage, domain.NameValue{Name: kv[0], Value: kv[1]})
	}
	return origin, nil
}

func (p *Page) bound(ctx context.Context, timeout time.Duration) *rod.Page {
	page := p.page.Context(ctx)
	if timeout > 0 {
		page = page.Timeout(timeout)
	}
	return page
}

type Element struct {
	el *rod.Element
}

var _ ports.Element = (*Element)(nil)

func (e *Element) TextContent(ctx context.Context) (string, error) {
	return e.property(ctx, "textContent")
}

func (e *Element) InnerText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.el.Context(ctx).Text()
}

func (e *Element) InnerHTML(ctx context.Context) (string, error) {
	return e.property(ctx, "innerHTML")
}

func (e *Element) IsVisible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.el.Context(ctx).Visible()
}

func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *Element) property(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.el.Context(ctx).Property(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return v.Str(), nil
}
