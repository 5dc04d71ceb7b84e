package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type PlatformID string

type AuthKind string

const (
	AuthKindNone         AuthKind = "none"
	AuthKindCookie       AuthKind = "cookie"
	AuthKindToken        AuthKind = "token"
	AuthKindLocalStorage AuthKind = "local_storage"
)

type AuthDescriptor struct {
	Kind AuthKind `json:"kind,omitempty"`
	// Value holds the stored credential: a cookie header ("a=1; b=2"), a bearer token,
	// or a JSON object of local-storage entries, depending on Kind.
	Value string `json:"value,omitempty"`
	// SecretRef names a secret-store entry holding Value, used when Value is empty.
	SecretRef string `json:"secret_ref,omitempty"`
	// StorageKey is the local-storage key a token is written under.
	StorageKey string `json:"storage_key,omitempty"`
	// APIPattern is a substring of an authenticated API URL. A 2xx response whose URL
	// contains it corroborates a login when the UI check is inconclusive.
	APIPattern string `json:"api_pattern,omitempty"`
}

func (a AuthDescriptor) HasCredential() bool {
	if a.Kind == "" || a.Kind == AuthKindNone {
		return false
	}
	return strings.TrimSpace(a.Value) != "" || strings.TrimSpace(a.SecretRef) != ""
}

// SelectorDescriptor holds opaque selectors owned by configuration. Toggle fields are
// regular expressions matched against element text rather than CSS selectors.
type SelectorDescriptor struct {
	Input           string `json:"input"`
	Submit          string `json:"submit,omitempty"`
	Response        string `json:"response"`
	LoginButton     string `json:"login_button,omitempty"`
	LoggedIn        string `json:"logged_in,omitempty"`
	Generating      string `json:"generating,omitempty"`
	SearchResults   string `json:"search_results,omitempty"`
	SearchToggle    string `json:"search_toggle,omitempty"`
	References      string `json:"references,omitempty"`
	ReferenceToggle string `json:"reference_toggle,omitempty"`
}

type PlatformProfile struct {
	ID                 PlatformID         `json:"id"`
	Name               string             `json:"name,omitempty"`
	Adapter            string             `json:"adapter,omitempty"`
	URL                string             `json:"url"`
	Model              string             `json:"model,omitempty"`
	Auth               AuthDescriptor     `json:"auth"`
	Selectors          SelectorDescriptor `json:"selectors"`
	NavigationTimeout  time.Duration      `json:"-"`
	ResponseTimeout    time.Duration      `json:"-"`
	LoginTimeout       time.Duration      `json:"-"`
	PollInterval       time.Duration      `json:"-"`
	StabilityThreshold int                `json:"stability_threshold,omitempty"`
}

// profileTimings carries the profile durations as "45s" style strings in JSON.
type profileTimings struct {
	NavigationTimeout string `json:"navigation_timeout,omitempty"`
	ResponseTimeout   string `json:"response_timeout,omitempty"`
	LoginTimeout      string `json:"login_timeout,omitempty"`
	PollInterval      string `json:"poll_interval,omitempty"`
}

type profileJSON struct {
	profileAlias
	Timings profileTimings `json:"timings"`
}

type profileAlias PlatformProfile

// MarshalJSON leaves HTML escaping to the caller's encoder.
func (p PlatformProfile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(profileJSON{
		profileAlias: profileAlias(p),
		Timings: profileTimings{
			NavigationTimeout: durationString(p.NavigationTimeout),
			ResponseTimeout:   durationString(p.ResponseTimeout),
			LoginTimeout:      durationString(p.LoginTimeout),
			PollInterval:      durationString(p.PollInterval),
		},
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (p *PlatformProfile) UnmarshalJSON(data []byte) error {
	var raw profileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	profile := PlatformProfile(raw.profileAlias)

	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"navigation_timeout", raw.Timings.NavigationTimeout, &profile.NavigationTimeout},
		{"response_timeout", raw.Timings.ResponseTimeout, &profile.ResponseTimeout},
		{"login_timeout", raw.Timings.LoginTimeout, &profile.LoginTimeout},
		{"poll_interval", raw.Timings.PollInterval, &profile.PollInterval},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("platform %q: %s: %w", profile.ID, f.name, err)
		}
		*f.dst = d
	}

	*p = profile
	return nil
}

func durationString(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func (p PlatformProfile) AdapterKind() string {
	if kind := strings.TrimSpace(p.Adapter); kind != "" {
		return kind
	}
	return string(p.ID)
}

func (p PlatformProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return string(p.ID)
}

func (p PlatformProfile) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("platform %q: url is required", p.ID)
	}
	parsed, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("platform %q: parse url: %w", p.ID, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("platform %q: url must use http or https", p.ID)
	}
	if strings.TrimSpace(p.Selectors.Input) == "" {
		return fmt.Errorf("platform %q: input selector is required", p.ID)
	}
	if strings.TrimSpace(p.Selectors.Response) == "" {
		return fmt.Errorf("platform %q: response selector is required", p.ID)
	}
	switch p.Auth.Kind {
	case "", AuthKindNone, AuthKindCookie, AuthKindToken, AuthKindLocalStorage:
	default:
		return fmt.Errorf("platform %q: unsupported auth kind %q", p.ID, p.Auth.Kind)
	}
	if p.Auth.Kind == AuthKindToken && strings.TrimSpace(p.Auth.StorageKey) == "" {
		return fmt.Errorf("platform %q: token auth requires a storage key", p.ID)
	}
	if p.StabilityThreshold < 0 {
		return fmt.Errorf("platform %q: stability threshold must not be negative", p.ID)
	}

	return nil
}
