package rod

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

func protoBlankTarget() proto.TargetCreateTarget {
	return proto.TargetCreateTarget{URL: ""}
}

func setUserAgent(page *rod.Page, userAgent, locale string) error {
	req := &proto.NetworkSetUserAgentOverride{UserAgent: userAgent, AcceptLanguage: locale}
	if req.UserAgent == "" {
		version, err := page.Browser().Version()
		if err != nil {
			return fmt.Errorf("read browser version: %w", err)
		}
		req.UserAgent = version.UserAgent
	}
	if err := page.SetUserAgent(req); err != nil {
		return fmt.Errorf("set user agent: %w", err)
	}
	return nil
}

func setViewport(page *rod.Page, width, height int) error {
	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}

func toCookieParams(cookies []domain.Cookie) []*proto.NetworkCookieParam {
	out := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		param := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: proto.NetworkCookieSameSite(c.SameSite),
		}
		if param.Path == "" {
			param.Path = "/"
		}
		if c.Expires > 0 {
			param.Expires = proto.TimeSinceEpoch(c.Expires)
		}
		out = append(out, param)
	}
	return out
}

func fromNetworkCookies(cookies []*proto.NetworkCookie) []domain.Cookie {
	out := make([]domain.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  float64(c.Expires),
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: string(c.SameSite),
		})
	}
	return out
}
