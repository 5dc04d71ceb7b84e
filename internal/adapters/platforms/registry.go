// Package platforms holds one PlatformAdapter implementation per target site and the
// registry that selects them by the profile's adapter kind.
package platforms

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

// Deps are the collaborators every adapter shares. Secrets and Markup may be nil.
type Deps struct {
	Logger  *slog.Logger
	Clock   ports.Clock
	Secrets ports.SecretStore
	Markup  ports.MarkupConverter
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Clock == nil {
		d.Clock = ports.SystemClock{}
	}
	return d
}

// Factory binds a profile to an open page.
type Factory func(profile domain.PlatformProfile, page ports.Page, deps Deps) ports.PlatformAdapter

type Registry struct {
	deps      Deps
	mu        sync.RWMutex
	factories map[string]Factory
}

var _ ports.AdapterFactory = (*Registry)(nil)

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps.withDefaults(), factories: map[string]Factory{}}
}

// NewDefaultRegistry returns a registry with every built-in site registered.
func NewDefaultRegistry(deps Deps) *Registry {
	r := NewRegistry(deps)
	r.Register("chatgpt", newChatGPT)
	r.Register("perplexity", newPerplexity)
	r.Register("gemini", newGemini)
	r.Register("deepseek", newDeepSeek)
	r.Register("kimi", newKimi)
	r.Register("doubao", newDoubao)
	r.Register("generic", newGeneric)
	return r
}

func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalizeKind(kind)] = factory
}

func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (r *Registry) Supports(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalizeKind(kind)]
	return ok
}

func (r *Registry) New(profile domain.PlatformProfile, page ports.Page) (ports.PlatformAdapter, error) {
	if page == nil {
		return nil, fmt.Errorf("build adapter for %s: page is nil", profile.ID)
	}

	kind := normalizeKind(profile.AdapterKind())
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q for platform %s", domain.ErrUnknownAdapter, kind, profile.ID)
	}

	return factory(profile, page, r.deps), nil
}

func normalizeKind(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
