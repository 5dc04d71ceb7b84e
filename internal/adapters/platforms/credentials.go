package platforms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/aiprobe-cli/internal/dom"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

var errNoCookies = errors.New("cookie header holds no cookies")

func (s *site) credential(ctx context.Context) (string, error) {
	auth := s.profile.Auth
	if v := strings.TrimSpace(auth.Value); v != "" {
		return v, nil
	}
	if s.deps.Secrets == nil {
		return "", fmt.Errorf("resolve credential %q: no secret store configured", auth.SecretRef)
	}

	v, err := s.deps.Secrets.Get(ctx, auth.SecretRef)
	if err != nil {
		return "", fmt.Errorf("resolve credential %q: %w", auth.SecretRef, err)
	}
	return strings.TrimSpace(v), nil
}

func (s *site) injectCredential(ctx context.Context, cred string) error {
	auth := s.profile.Auth
	switch auth.Kind {
	case domain.AuthKindCookie:
		host, err := hostOf(s.profile.URL)
		if err != nil {
			return err
		}
		cookies, err := ParseCookieHeader(cred, host, s.traits.sessionCookie)
		if err != nil {
			return err
		}
		bc := s.page.Context()
		if bc == nil {
			return errors.New("page has no browsing context")
		}
		return bc.AddCookies(ctx, cookies)
	case domain.AuthKindToken:
		value := cred
		if s.traits.encodeToken != nil {
			value = s.traits.encodeToken(cred)
		}
		return s.setLocalStorage(ctx, map[string]string{auth.StorageKey: value})
	case domain.AuthKindLocalStorage:
		var entries map[string]string
		if err := json.Unmarshal([]byte(cred), &entries); err != nil {
			return fmt.Errorf("decode local storage credential: %w", err)
		}
		return s.setLocalStorage(ctx, entries)
	default:
		return fmt.Errorf("auth kind %q cannot be injected", auth.Kind)
	}
}

const setLocalStorageScript = `(entries) => {
	for (const [k, v] of Object.entries(entries)) localStorage.setItem(k, v);
	return Object.keys(entries).length;
}`

func (s *site) setLocalStorage(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return errors.New("no local storage entries to write")
	}
	if _, err := s.page.Evaluate(ctx, setLocalStorageScript, entries); err != nil {
		return fmt.Errorf("write local storage: %w", err)
	}
	return nil
}

// ParseCookieHeader splits a "name=value; name2=value2" header into cookies scoped to host.
// A bare value with no "=" is stored under defaultName when one is given.
func ParseCookieHeader(header, host, defaultName string) ([]domain.Cookie, error) {
	cookieDomain := "." + dom.HostDomain(host)

	var cookies []domain.Cookie
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, ok := strings.Cut(part, "=")
		if !ok {
			if defaultName == "" {
				continue
			}
			name, value = defaultName, part
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		cookies = append(cookies, domain.Cookie{
			Name:     name,
			Value:    strings.TrimSpace(value),
			Domain:   cookieDomain,
			Path:     "/",
			Secure:   true,
			SameSite: "Lax",
		})
	}

	if len(cookies) == 0 {
		return nil, errNoCookies
	}
	return cookies, nil
}

func hostOf(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse platform url: %w", err)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("platform url %q has no host", raw)
	}
	return parsed.Hostname(), nil
}
