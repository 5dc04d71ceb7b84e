package platforms

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bnema/aiprobe-cli/internal/dom"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

var errToggleNotFound = errors.New("toggle not found")

// extractCitations reads the search-results and references panels. Explicit references win;
// search results stand in for them when the references panel is empty.
func (s *site) extractCitations(ctx context.Context, res *domain.ExtractionResult) {
	sel := s.profile.Selectors

	search, searchErr := s.panelReferences(ctx, sel.SearchResults, sel.SearchToggle)
	refs, refErr := s.panelReferences(ctx, sel.References, sel.ReferenceToggle)

	res.SearchResults = search
	res.References = dom.ReferencesOrFallback(refs, search)

	failure := errors.Join(searchErr, refErr)
	switch {
	case len(res.References) > 0:
		res.ReferencesOutcome = domain.ReferencesFound
	case failure != nil:
		res.ReferencesOutcome = domain.ReferencesFailed
		res.ReferencesError = failure.Error()
		s.logger.WarnContext(ctx, "citation extraction failed", "error", failure)
	default:
		res.ReferencesOutcome = domain.ReferencesNone
	}
}

func (s *site) panelReferences(ctx context.Context, panel, toggle string) ([]domain.Reference, error) {
	if strings.TrimSpace(panel) == "" {
		return nil, nil
	}

	if strings.TrimSpace(toggle) != "" {
		if err := s.openToggle(ctx, toggle); err != nil {
			s.logger.DebugContext(ctx, "panel toggle not opened", "toggle", toggle, "error", err)
		}
	}

	markup, err := s.page.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read page markup: %w", domain.ErrExtraction, err)
	}
	raw, err := dom.SelectLinks(markup, panel, s.profile.Selectors.Response)
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %w", domain.ErrExtraction, panel, err)
	}
	return dom.NormalizeReferences(raw), nil
}

// openToggle finds the collapsed control whose text matches pattern near the newest answer
// and clicks it once. Toggles already opened for this answer are left alone.
func (s *site) openToggle(ctx context.Context, pattern string) error {
	if s.opened[pattern] {
		return nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compile toggle pattern: %w", err)
	}

	markup, err := s.page.Content(ctx)
	if err != nil {
		return fmt.Errorf("read page markup: %w", err)
	}
	root, answers, err := dom.ParseSelect(markup, s.profile.Selectors.Response)
	if err != nil {
		return err
	}

	isToggle := dom.TextMatcher(re)
	var hit *dom.Node
	if len(answers) > 0 {
		hit = dom.FindToggle(answers[len(answers)-1], isToggle, s.traits.toggleHops)
	} else if hits := dom.FindDeepest(root, isToggle); len(hits) > 0 {
		hit = hits[0]
	}
	if hit == nil {
		return errToggleNotFound
	}

	target := dom.CSSPath(dom.Clickable(hit))
	if err := s.page.Click(ctx, target); err != nil {
		return fmt.Errorf("click toggle %s: %w", target, err)
	}
	s.opened[pattern] = true

	return s.deps.Clock.Sleep(ctx, defaultToggleSettle)
}
