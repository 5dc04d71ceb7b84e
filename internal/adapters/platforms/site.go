package platforms

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bnema/aiprobe-cli/internal/completion"
	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	DefaultNavigationTimeout = 45 * time.Second
	DefaultLoginTimeout      = 5 * time.Minute
	DefaultResponseTimeout   = 2 * time.Minute

	defaultToggleHops   = 3
	defaultToggleSettle = 800 * time.Millisecond
	loginPollInterval   = 2 * time.Second
)

// traits capture how one site differs from the shared flow.
type traits struct {
	pollInterval time.Duration
	threshold    int
	toggleHops   int
	// anonymousInput marks sites that show the query box to logged-out visitors,
	// so input visibility proves nothing about authentication.
	anonymousInput bool
	// submitWithEnter skips the submit control; some sites keep it disabled until a keystroke.
	submitWithEnter bool
	// sessionCookie names the cookie a bare credential value is stored under.
	sessionCookie string
	// encodeToken wraps a token before it is written to local storage.
	encodeToken func(token string) string
	chromeLines []*regexp.Regexp
	markers     *regexp.Regexp
}

// site is the shared login/query/extract flow that every per-site adapter embeds.
type site struct {
	profile domain.PlatformProfile
	page    ports.Page
	deps    Deps
	traits  traits
	logger  *slog.Logger

	authSignal atomic.Bool
	baseline   int
	opened     map[string]bool
	loginTrail []domain.LoginState
}

func newSite(profile domain.PlatformProfile, page ports.Page, deps Deps, t traits) *site {
	deps = deps.withDefaults()
	if t.toggleHops <= 0 {
		t.toggleHops = defaultToggleHops
	}

	s := &site{
		profile: profile,
		page:    page,
		deps:    deps,
		traits:  t,
		logger:  deps.Logger.With("platform", string(profile.ID)),
		opened:  map[string]bool{},
	}

	if pattern := strings.TrimSpace(profile.Auth.APIPattern); pattern != "" {
		page.OnResponse(func(resp ports.NetworkResponse) {
			if resp.Status >= 200 && resp.Status < 300 && strings.Contains(resp.URL, pattern) {
				s.authSignal.Store(true)
			}
		})
	}
	return s
}

func (s *site) Platform() domain.PlatformID {
	return s.profile.ID
}

// Navigate loads the entry URL. A partial load is logged and tolerated; only a done ctx is returned.
func (s *site) Navigate(ctx context.Context) error {
	if err := s.page.Goto(ctx, s.profile.URL, s.navigationTimeout()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", domain.ErrNavigation, ctxErr)
		}
		s.logger.WarnContext(ctx, "navigation incomplete, continuing", "url", s.profile.URL, "error", err)
	}
	return nil
}

func (s *site) IsLoggedIn(ctx context.Context) bool {
	sel := s.profile.Selectors
	if !s.requiresAuth() {
		return s.visible(ctx, sel.Input)
	}
	if sel.LoginButton != "" && s.visible(ctx, sel.LoginButton) {
		return false
	}
	if sel.LoggedIn != "" {
		return s.visible(ctx, sel.LoggedIn)
	}
	if s.traits.anonymousInput {
		return false
	}
	return s.visible(ctx, sel.Input)
}

func (s *site) SendQuery(ctx context.Context, text string) error {
	sel := s.profile.Selectors
	s.baseline = s.countResponses(ctx)
	s.opened = map[string]bool{}

	if err := s.page.Fill(ctx, sel.Input, text); err != nil {
		return fmt.Errorf("%w: fill input: %w", domain.ErrExtraction, err)
	}

	if !s.traits.submitWithEnter && sel.Submit != "" && s.visible(ctx, sel.Submit) {
		err := s.page.Click(ctx, sel.Submit)
		if err == nil {
			return nil
		}
		s.logger.DebugContext(ctx, "submit click failed, pressing enter", "error", err)
	}

	if err := s.page.Press(ctx, sel.Input, "Enter"); err != nil {
		return fmt.Errorf("%w: submit query: %w", domain.ErrExtraction, err)
	}
	return nil
}

func (s *site) WaitForResponse(ctx context.Context, timeout time.Duration) (domain.ExtractionResult, bool) {
	if timeout <= 0 {
		timeout = DefaultResponseTimeout
	}

	cfg := completion.Config{
		Interval:  s.pollInterval(),
		Timeout:   timeout,
		Threshold: s.stabilityThreshold(),
	}
	outcome, err := completion.Wait(ctx, s.deps.Clock, cfg, s.snapshot)
	if err != nil {
		s.logger.WarnContext(ctx, "response wait interrupted", "polls", outcome.Polls, "error", err)
	} else if outcome.TimedOut {
		s.logger.WarnContext(ctx, "response did not stabilize", "timeout", timeout, "polls", outcome.Polls)
	}

	text := s.cleanText(outcome.Text)
	return domain.ExtractionResult{Text: text, TimedOut: outcome.TimedOut}, text != ""
}

func (s *site) ExtractResponse(ctx context.Context) domain.ExtractionResult {
	var res domain.ExtractionResult

	el, err := s.latestResponse(ctx)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "read response container", "error", err)
	case el == nil:
		s.logger.WarnContext(ctx, "response container not found", "selector", s.profile.Selectors.Response)
	default:
		text, err := el.InnerText(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "read response text", "error", err)
		}
		res.Text = s.cleanText(text)
		res.Markdown = s.markdown(ctx, el)
	}

	s.extractCitations(ctx, &res)
	return res
}

func (s *site) snapshot(ctx context.Context) (completion.Snapshot, error) {
	el, err := s.latestResponse(ctx)
	if err != nil {
		return completion.Snapshot{}, err
	}

	var text string
	if el != nil {
		text, err = el.InnerText(ctx)
		if err != nil {
			return completion.Snapshot{}, err
		}
	}

	generating := s.profile.Selectors.Generating != "" && s.visible(ctx, s.profile.Selectors.Generating)
	return completion.Snapshot{Text: strings.TrimSpace(text), Generating: generating}, nil
}

// latestResponse returns the newest response container added since the query was sent.
func (s *site) latestResponse(ctx context.Context) (ports.Element, error) {
	els, err := s.page.QueryAll(ctx, s.profile.Selectors.Response)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 || len(els) <= s.baseline {
		return nil, nil
	}
	return els[len(els)-1], nil
}

func (s *site) countResponses(ctx context.Context) int {
	els, err := s.page.QueryAll(ctx, s.profile.Selectors.Response)
	if err != nil {
		return 0
	}
	return len(els)
}

func (s *site) markdown(ctx context.Context, el ports.Element) string {
	if s.deps.Markup == nil {
		return ""
	}
	html, err := el.InnerHTML(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "read response markup", "error", err)
		return ""
	}
	md, err := s.deps.Markup.ToMarkdown(html)
	if err != nil {
		s.logger.DebugContext(ctx, "convert response markup", "error", err)
		return ""
	}
	return md
}

func (s *site) visible(ctx context.Context, selector string) bool {
	if strings.TrimSpace(selector) == "" {
		return false
	}
	els, err := s.page.QueryAll(ctx, selector)
	if err != nil {
		return false
	}
	for _, el := range els {
		if ok, err := el.IsVisible(ctx); err == nil && ok {
			return true
		}
	}
	return false
}

func (s *site) requiresAuth() bool {
	return s.profile.Auth.Kind != "" && s.profile.Auth.Kind != domain.AuthKindNone
}

func (s *site) navigationTimeout() time.Duration {
	if s.profile.NavigationTimeout > 0 {
		return s.profile.NavigationTimeout
	}
	return DefaultNavigationTimeout
}

func (s *site) loginTimeout() time.Duration {
	if s.profile.LoginTimeout > 0 {
		return s.profile.LoginTimeout
	}
	return DefaultLoginTimeout
}

func (s *site) pollInterval() time.Duration {
	if s.profile.PollInterval > 0 {
		return s.profile.PollInterval
	}
	if s.traits.pollInterval > 0 {
		return s.traits.pollInterval
	}
	return completion.DefaultInterval
}

// stabilityThreshold doubles the site default when no in-progress affordance is configured,
// since pure text stability is then the only completion signal.
func (s *site) stabilityThreshold() int {
	if s.profile.StabilityThreshold > 0 {
		return s.profile.StabilityThreshold
	}
	threshold := s.traits.threshold
	if threshold <= 0 {
		threshold = completion.DefaultThreshold
	}
	if strings.TrimSpace(s.profile.Selectors.Generating) == "" {
		threshold *= 2
	}
	return threshold
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// cleanText drops UI chrome lines and inline citation markers from answer text.
func (s *site) cleanText(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if matchesAny(s.traits.chromeLines, strings.TrimSpace(line)) {
			continue
		}
		if s.traits.markers != nil {
			line = s.traits.markers.ReplaceAllString(line, "")
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(kept, "\n"), "\n\n"))
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func chromePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
