package file

import (
	"time"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type payloadSchema struct {
	Timestamp int64          `json:"timestamp"`
	Cookies   []cookieSchema `json:"cookies"`
	Origins   []originSchema `json:"origins"`
	Model     string         `json:"model"`
}

type cookieSchema struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

type originSchema struct {
	Origin       string            `json:"origin"`
	LocalStorage []nameValueSchema `json:"localStorage"`
}

type nameValueSchema struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func toPayload(state domain.SessionState, now time.Time) payloadSchema {
	payload := payloadSchema{
		Timestamp: now.UnixMilli(),
		Cookies:   make([]cookieSchema, 0, len(state.Cookies)),
		Origins:   make([]originSchema, 0, len(state.Origins)),
		Model:     state.Model,
	}
	for _, c := range state.Cookies {
		payload.Cookies = append(payload.Cookies, cookieSchema{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
	for _, o := range state.Origins {
		entries := make([]nameValueSchema, 0, len(o.LocalStorage))
		for _, kv := range o.LocalStorage {
			entries = append(entries, nameValueSchema{Name: kv.Name, Value: kv.Value})
		}
		payload.Origins = append(payload.Origins, originSchema{Origin: o.Origin, LocalStorage: entries})
	}
	return payload
}

func fromPayload(platform domain.PlatformID, payload payloadSchema) domain.SessionRecord {
	record := domain.SessionRecord{
		Platform:  platform,
		Cookies:   make([]domain.Cookie, 0, len(payload.Cookies)),
		Origins:   make([]domain.Origin, 0, len(payload.Origins)),
		Model:     payload.Model,
		CreatedAt: time.UnixMilli(payload.Timestamp),
	}
	for _, c := range payload.Cookies {
		record.Cookies = append(record.Cookies, domain.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
	for _, o := range payload.Origins {
		entries := make([]domain.NameValue, 0, len(o.LocalStorage))
		for _, kv := range o.LocalStorage {
			entries = append(entries, domain.NameValue{Name: kv.Name, Value: kv.Value})
		}
		record.Origins = append(record.Origins, domain.Origin{Origin: o.Origin, LocalStorage: entries})
	}
	return record
}
