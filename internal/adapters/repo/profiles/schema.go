package profiles

import (
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version" yaml:"version"`
	Defaults  timingsSchema    `toml:"defaults" yaml:"defaults"`
	Platforms []platformSchema `toml:"platforms" yaml:"platforms"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// timingsSchema holds durations as strings ("45s", "2m") so both encodings read the same way.
type timingsSchema struct {
	NavigationTimeout  string `toml:"navigation_timeout,omitempty" yaml:"navigation_timeout,omitempty"`
	ResponseTimeout    string `toml:"response_timeout,omitempty" yaml:"response_timeout,omitempty"`
	LoginTimeout       string `toml:"login_timeout,omitempty" yaml:"login_timeout,omitempty"`
	PollInterval       string `toml:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	StabilityThreshold int    `toml:"stability_threshold,omitempty" yaml:"stability_threshold,omitempty"`
}

// builtinTimings backs any timing neither the platform nor [defaults] sets. Poll interval and
// stability threshold stay unset so each site adapter can apply its own.
var builtinTimings = timingsSchema{
	NavigationTimeout: "45s",
	ResponseTimeout:   "2m",
	LoginTimeout:      "5m",
}

type platformSchema struct {
	ID        string          `toml:"id" yaml:"id"`
	Name      string          `toml:"name,omitempty" yaml:"name,omitempty"`
	Adapter   string          `toml:"adapter,omitempty" yaml:"adapter,omitempty"`
	URL       string          `toml:"url" yaml:"url"`
	Model     string          `toml:"model,omitempty" yaml:"model,omitempty"`
	Timings   timingsSchema   `toml:"timings,omitempty" yaml:"timings,omitempty"`
	Auth      authSchema      `toml:"auth,omitempty" yaml:"auth,omitempty"`
	Selectors selectorsSchema `toml:"selectors" yaml:"selectors"`
}

type authSchema struct {
	Kind       string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Value      string `toml:"value,omitempty" yaml:"value,omitempty"`
	SecretRef  string `toml:"secret_ref,omitempty" yaml:"secret_ref,omitempty"`
	StorageKey string `toml:"storage_key,omitempty" yaml:"storage_key,omitempty"`
	APIPattern string `toml:"api_pattern,omitempty" yaml:"api_pattern,omitempty"`
}

type selectorsSchema struct {
	Input           string `toml:"input" yaml:"input"`
	Submit          string `toml:"submit,omitempty" yaml:"submit,omitempty"`
	Response        string `toml:"response" yaml:"response"`
	LoginButton     string `toml:"login_button,omitempty" yaml:"login_button,omitempty"`
	LoggedIn        string `toml:"logged_in,omitempty" yaml:"logged_in,omitempty"`
	Generating      string `toml:"generating,omitempty" yaml:"generating,omitempty"`
	SearchResults   string `toml:"search_results,omitempty" yaml:"search_results,omitempty"`
	SearchToggle    string `toml:"search_toggle,omitempty" yaml:"search_toggle,omitempty"`
	References      string `toml:"references,omitempty" yaml:"references,omitempty"`
	ReferenceToggle string `toml:"reference_toggle,omitempty" yaml:"reference_toggle,omitempty"`
}

func fromSchema(entry platformSchema, defaults timingsSchema) (domain.PlatformProfile, error) {
	timings := entry.Timings
	if err := mergo.Merge(&timings, defaults); err != nil {
		return domain.PlatformProfile{}, fmt.Errorf("merge defaults for %q: %w", entry.ID, err)
	}
	if err := mergo.Merge(&timings, builtinTimings); err != nil {
		return domain.PlatformProfile{}, fmt.Errorf("merge builtin timings for %q: %w", entry.ID, err)
	}

	profile := domain.PlatformProfile{
		ID:      domain.PlatformID(strings.TrimSpace(entry.ID)),
		Name:    entry.Name,
		Adapter: entry.Adapter,
		URL:     strings.TrimSpace(entry.URL),
		Model:   entry.Model,
		Auth: domain.AuthDescriptor{
			Kind:       domain.AuthKind(strings.ToLower(strings.TrimSpace(entry.Auth.Kind))),
			Value:      entry.Auth.Value,
			SecretRef:  entry.Auth.SecretRef,
			StorageKey: entry.Auth.StorageKey,
			APIPattern: entry.Auth.APIPattern,
		},
		Selectors: domain.SelectorDescriptor{
			Input:           entry.Selectors.Input,
			Submit:          entry.Selectors.Submit,
			Response:        entry.Selectors.Response,
			LoginButton:     entry.Selectors.LoginButton,
			LoggedIn:        entry.Selectors.LoggedIn,
			Generating:      entry.Selectors.Generating,
			SearchResults:   entry.Selectors.SearchResults,
			SearchToggle:    entry.Selectors.SearchToggle,
			References:      entry.Selectors.References,
			ReferenceToggle: entry.Selectors.ReferenceToggle,
		},
		StabilityThreshold: timings.StabilityThreshold,
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"navigation_timeout", timings.NavigationTimeout, &profile.NavigationTimeout},
		{"response_timeout", timings.ResponseTimeout, &profile.ResponseTimeout},
		{"login_timeout", timings.LoginTimeout, &profile.LoginTimeout},
		{"poll_interval", timings.PollInterval, &profile.PollInterval},
	}
	for _, d := range durations {
		parsed, err := parseDuration(d.raw)
		if err != nil {
			return domain.PlatformProfile{}, fmt.Errorf("platform %q: %s: %w", entry.ID, d.name, err)
		}
		*d.dst = parsed
	}

	if err := profile.Validate(); err != nil {
		return domain.PlatformProfile{}, err
	}

	return profile, nil
}

func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", raw)
	}

	return d, nil
}
