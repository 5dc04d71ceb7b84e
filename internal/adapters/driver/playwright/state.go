package playwright

import (
	pw "github.com/playwright-community/playwright-go"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

func toStorageState(state domain.SessionState) *pw.OptionalStorageState {
	out := &pw.OptionalStorageState{Cookies: toOptionalCookies(state.Cookies)}
	for _, o := range state.Origins {
		origin := pw.Origin{Origin: o.Origin}
		for _, kv := range o.LocalStorage {
			origin.LocalStorage = append(origin.LocalStorage, pw.NameValue{Name: kv.Name, Value: kv.Value})
		}
		out.Origins = append(out.Origins, origin)
	}
	return out
}

func toOptionalCookies(cookies []domain.Cookie) []pw.OptionalCookie {
	out := make([]pw.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		cookie := pw.OptionalCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   pw.String(c.Domain),
			Path:     pw.String(pathOrRoot(c.Path)),
			HttpOnly: pw.Bool(c.HTTPOnly),
			Secure:   pw.Bool(c.Secure),
		}
		if c.Expires > 0 {
			cookie.Expires = pw.Float(c.Expires)
		}
		if sameSite, ok := sameSiteAttribute(c.SameSite); ok {
			cookie.SameSite = sameSite
		}
		out = append(out, cookie)
	}
	return out
}

func fromStorageState(state *pw.StorageState) domain.SessionState {
	var out domain.SessionState
	if state == nil {
		return out
	}
	for _, c := range state.Cookies {
		cookie := domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.SameSite != nil {
			cookie.SameSite = string(*c.SameSite)
		}
		out.Cookies = append(out.Cookies, cookie)
	}
	for _, o := range state.Origins {
		origin := domain.Origin{Origin: o.Origin}
		for _, kv := range o.LocalStorage {
			origin.LocalStorage = append(origin.LocalStorage, domain.NameValue{Name: kv.Name, Value: kv.Value})
		}
		out.Origins = append(out.Origins, origin)
	}
	return out
}

func sameSiteAttribute(raw string) (*pw.SameSiteAttribute, bool) {
	switch raw {
	case "Strict":
		return pw.SameSiteAttributeStrict, true
	case "Lax":
		return pw.SameSiteAttributeLax, true
	case "None":
		return pw.SameSiteAttributeNone, true
	default:
		return nil, false
	}
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
