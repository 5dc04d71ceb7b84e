package platforms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/aiprobe-cli/internal/adapters/driver/fake"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

func TestWaitForResponseReturnsOnceTextIsStable(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	answer := fake.NewElement("", "Paris is", "Paris is big", "Paris is big", "Paris is big", "Paris is big", "Paris is big.")
	page.Set(".answer", answer)

	deps, clock := testDeps()
	adapter := newGeneric(testProfile("generic"), page, deps)

	res, ok := adapter.WaitForResponse(context.Background(), time.Minute)
	require.True(t, ok)
	assert.Equal(t, "Paris is big", res.Text)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 6, answer.Reads())
	assert.Len(t, clock.Sleeps(), 5)
}

func TestWaitForResponseGeneratingAffordanceBlocksCompletion(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set(".answer", fake.NewElement("partial answer"))
	page.Set("#stop", &fake.Element{Visibility: []bool{true, true, true, true, false}})

	deps, _ := testDeps()
	profile := testProfile("generic")
	profile.Selectors.Generating = "#stop"
	adapter := newGeneric(profile, page, deps)

	res, ok := adapter.WaitForResponse(context.Background(), time.Minute)
	require.True(t, ok)
	assert.False(t, res.TimedOut)
	assert.Equal(t, "partial answer", res.Text)
}

func TestWaitForResponseTimesOutWithPartialText(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set(".answer", fake.NewElement("partial answer"))
	page.Set("#stop", fake.NewElement())

	deps, clock := testDeps()
	profile := testProfile("generic")
	profile.Selectors.Generating = "#stop"
	adapter := newGeneric(profile, page, deps)

	res, ok := adapter.WaitForResponse(context.Background(), 5*time.Second)
	require.True(t, ok)
	assert.True(t, res.TimedOut)
	assert.Equal(t, "partial answer", res.Text)
	assert.Equal(t, testStart.Add(5*time.Second), clock.Now())
}

func TestWaitForResponseWithoutTextReportsNothing(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	deps, _ := testDeps()
	adapter := newGeneric(testProfile("generic"), page, deps)

	res, ok := adapter.WaitForResponse(context.Background(), 3*time.Second)
	assert.False(t, ok)
	assert.True(t, res.TimedOut)
	assert.Empty(t, res.Text)
}

func TestWaitForResponseIgnoresAnswersFromBeforeTheQuery(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	previous := fake.NewElement("old answer")
	page.Set(".answer", previous)
	page.AfterPress = func(p *fake.Page, _, _ string) {
		p.Set(".answer", previous, fake.NewElement("new answer"))
	}

	deps, _ := testDeps()
	profile := testProfile("generic")
	profile.Selectors.Submit = ""
	adapter := newGeneric(profile, page, deps)

	require.NoError(t, adapter.SendQuery(context.Background(), "capital of France?"))
	res, ok := adapter.WaitForResponse(context.Background(), time.Minute)
	require.True(t, ok)
	assert.Equal(t, "new answer", res.Text)
}

func TestSendQuerySubmitStrategies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		build       func(domain.PlatformProfile, *fake.Page, Deps) any
		submit      bool
		wantClicks  []string
		wantPresses []string
	}{
		{
			name:       "visible submit control is clicked",
			build:      func(p domain.PlatformProfile, page *fake.Page, d Deps) any { return newGeneric(p, page, d) },
			submit:     true,
			wantClicks: []string{"#send"},
		},
		{
			name:        "missing submit control falls back to enter",
			build:       func(p domain.PlatformProfile, page *fake.Page, d Deps) any { return newGeneric(p, page, d) },
			wantPresses: []string{"#prompt:Enter"},
		},
		{
			name:        "enter-only site ignores the submit control",
			build:       func(p domain.PlatformProfile, page *fake.Page, d Deps) any { return newPerplexity(p, page, d) },
			submit:      true,
			wantPresses: []string{"#prompt:Enter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _ := openPage(t)
			if tt.submit {
				page.Set("#send", fake.NewElement())
			}
			deps, _ := testDeps()
			adapter := tt.build(testProfile("generic"), page, deps).(interface {
				SendQuery(context.Context, string) error
			})

			require.NoError(t, adapter.SendQuery(context.Background(), "best espresso grinder"))
			assert.Equal(t, "best espresso grinder", page.Filled("#prompt"))
			assert.Equal(t, tt.wantClicks, page.Clicks())
			assert.Equal(t, tt.wantPresses, page.Presses())
		})
	}
}

func TestSendQueryFillFailureIsExtractionFailure(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.FillErr = errors.New("no element matches #prompt")
	deps, _ := testDeps()

	err := newGeneric(testProfile("generic"), page, deps).SendQuery(context.Background(), "q")
	require.ErrorIs(t, err, domain.ErrExtraction)
	assert.Equal(t, domain.ErrorKindExtractionFailure, domain.KindOf(err))
}

func TestNavigateToleratesPartialLoad(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.GotoErr = errors.New("timeout 45000ms exceeded")
	deps, _ := testDeps()
	adapter := newGeneric(testProfile("generic"), page, deps)

	require.NoError(t, adapter.Navigate(context.Background()))
	assert.Equal(t, []string{"https://chatgpt.com/"}, page.Gotos())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, adapter.Navigate(ctx), domain.ErrNavigation)
}

const searchPanelPage = `<html><body>
<div class="answer"><p>Paris is the capital of France.</p></div>
<ul class="search">
  <li><a href="https://www.britannica.com/place/Paris"><h3>Paris | Britannica</h3></a></li>
  <li><a href="https://en.wikipedia.org/wiki/Paris#History">Paris - Wikipedia</a></li>
  <li><a href="javascript:void(0)">More</a></li>
</ul>
</body></html>`

func TestExtractResponseFallsBackToSearchResults(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set(".answer", &fake.Element{Texts: []string{"Paris is the capital of France."}, HTML: "<p>Paris is the capital of France.</p>"})
	page.SetMarkup(searchPanelPage)

	deps, _ := testDeps()
	profile := testProfile("generic")
	profile.Selectors.SearchResults = "ul.search li"
	profile.Selectors.References = "aside.refs a"
	adapter := newGeneric(profile, page, deps)

	res := adapter.ExtractResponse(context.Background())

	assert.Equal(t, "Paris is the capital of France.", res.Text)
	assert.Equal(t, domain.ReferencesFound, res.ReferencesOutcome)
	assert.Equal(t, []domain.Reference{
		{Position: 1, Domain: "britannica.com", Title: "Paris | Britannica", URL: "https://www.britannica.com/place/Paris"},
		{Position: 2, Domain: "en.wikipedia.org", Title: "Paris - Wikipedia", URL: "https://en.wikipedia.org/wiki/Paris"},
	}, res.References)
	assert.Len(t, res.SearchResults, 2)
}

const twoAnswersPage = `<html><body><main>
<div class="answer"><p>Berlin is the capital of Germany.</p>
  <aside class="refs"><a href="https://www.bundestag.de/" title="Bundestag">1</a></aside>
</div>
<div class="answer"><p>Paris is the capital of France.</p>
  <aside class="refs"><a href="https://www.lemonde.fr/paris" title="Le Monde">1</a></aside>
</div>
</main></body></html>`

func TestExtractResponseIgnoresEarlierAnswerCitations(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set(".answer",
		fake.NewElement("Berlin is the capital of Germany."),
		fake.NewElement("Paris is the capital of France."),
	)
	page.SetMarkup(twoAnswersPage)

	deps, _ := testDeps()
	profile := testProfile("generic")
	profile.Selectors.References = "aside.refs a"
	adapter := newGeneric(profile, page, deps)

	res := adapter.ExtractResponse(context.Background())

	assert.Equal(t, domain.ReferencesFound, res.ReferencesOutcome)
	assert.Equal(t, []domain.Reference{
		{Position: 1, Domain: "lemonde.fr", Title: "Le Monde", URL: "https://www.lemonde.fr/paris"},
	}, res.References)
}

const togglePage = `<html><body><main>
<div class="answer"><p>Paris is the capital.</p></div>
<div class="actions"><button><span>Sources</span></button></div>
</main></body></html>`

const toggleOpenedPage = `<html><body><main>
<div class="answer"><p>Paris is the capital.</p></div>
<div class="actions"><button><span>Sources</span></button></div>
<aside class="refs">
  <a href="https://www.lemonde.fr/paris" title="Le Monde">1</a>
  <a href="https://fr.wikipedia.org/wiki/Paris">Paris - Wikipédia</a>
</aside>
</main></body></html>`

func TestExtractResponseOpensReferenceToggle(t *testing.T) {
	t.Parallel()

	const toggleSelector = "html > body > main:nth-child(1) > div:nth-child(2) > button:nth-child(1)"

	page, _ := openPage(t)
	page.Set(".answer", fake.NewElement("Paris is the capital."))
	page.SetMarkup(togglePage)
	page.AfterClick = func(p *fake.Page, selector string) {
		if selector == toggleSelector {
			p.SetMarkup(toggleOpenedPage)
		}
	}

	deps, clock := testDeps()
	profile := testProfile("generic")
	profile.Selectors.References = "aside.refs a"
	profile.Selectors.ReferenceToggle = `^Sources$`
	adapter := newGeneric(profile, page, deps)

	res := adapter.ExtractResponse(context.Background())

	assert.Equal(t, []string{toggleSelector}, page.Clicks())
	assert.Equal(t, domain.ReferencesFound, res.ReferencesOutcome)
	assert.Equal(t, []domain.Reference{
		{Position: 1, Domain: "lemonde.fr", Title: "Le Monde", URL: "https://www.lemonde.fr/paris"},
		{Position: 2, Domain: "fr.wikipedia.org", Title: "Paris - Wikipédia", URL: "https://fr.wikipedia.org/wiki/Paris"},
	}, res.References)
	assert.Equal(t, []time.Duration{defaultToggleSettle}, clock.Sleeps())
}

func TestExtractResponseReferenceOutcomes(t *testing.T) {
	t.Parallel()

	t.Run("no citation surfaces", func(t *testing.T) {
		page, _ := openPage(t)
		page.Set(".answer", fake.NewElement("Plain answer"))
		page.SetMarkup(`<html><body><div class="answer">Plain answer</div></body></html>`)

		deps, _ := testDeps()
		profile := testProfile("generic")
		profile.Selectors.References = "aside.refs a"
		res := newGeneric(profile, page, deps).ExtractResponse(context.Background())

		assert.Equal(t, domain.ReferencesNone, res.ReferencesOutcome)
		assert.Empty(t, res.References)
		assert.Empty(t, res.ReferencesError)
	})

	t.Run("panel read failure", func(t *testing.T) {
		page, _ := openPage(t)
		page.Set(".answer", fake.NewElement("Plain answer"))
		page.ContentErr = errors.New("target closed")

		deps, _ := testDeps()
		profile := testProfile("generic")
		profile.Selectors.References = "aside.refs a"
		res := newGeneric(profile, page, deps).ExtractResponse(context.Background())

		assert.Equal(t, "Plain answer", res.Text)
		assert.Equal(t, domain.ReferencesFailed, res.ReferencesOutcome)
		assert.Contains(t, res.ReferencesError, "target closed")
		assert.Empty(t, res.References)
	})

	t.Run("missing container yields empty result", func(t *testing.T) {
		page, _ := openPage(t)
		deps, _ := testDeps()
		res := newGeneric(testProfile("generic"), page, deps).ExtractResponse(context.Background())

		assert.Empty(t, res.Text)
		assert.Equal(t, domain.ReferencesNone, res.ReferencesOutcome)
	})
}

func TestChatGPTRecordsModelSlug(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	page.Set(".answer", fake.NewElement("ChatGPT said:\nParis【4:0†source】 is the capital."))
	page.Eval = func(script string, _ any) (any, error) {
		if script == modelSlugScript {
			return "gpt-4o", nil
		}
		return nil, nil
	}

	deps, _ := testDeps()
	res := newChatGPT(testProfile("chatgpt"), page, deps).ExtractResponse(context.Background())

	assert.Equal(t, "gpt-4o", res.Model)
	assert.Equal(t, "Paris is the capital.", res.Text)
}

func TestCleanTextPerSite(t *testing.T) {
	t.Parallel()

	deps, _ := testDeps()
	tests := []struct {
		name  string
		build Factory
		raw   string
		want  string
	}{
		{
			name:  "deepseek drops reasoning banner and citation tags",
			build: newDeepSeek,
			raw:   "Thought for 12 seconds\n\nParis[citation:1] is the capital.[citation:2]\nCopy",
			want:  "Paris is the capital.",
		},
		{
			name:  "perplexity strips bracket markers",
			build: newPerplexity,
			raw:   "Answer\nParis is the capital[1][2].\n\n\n\nIt has 2.1M residents.[3]",
			want:  "Paris is the capital.\n\nIt has 2.1M residents.",
		},
		{
			name:  "generic keeps text",
			build: newGeneric,
			raw:   "  Copy\nline  ",
			want:  "Copy\nline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _ := openPage(t)
			adapter := tt.build(testProfile("x"), page, deps)
			s := siteOf(t, adapter)
			assert.Equal(t, tt.want, s.cleanText(tt.raw))
		})
	}
}

func TestStabilityThresholdWidensWithoutGeneratingAffordance(t *testing.T) {
	t.Parallel()

	page, _ := openPage(t)
	deps, _ := testDeps()

	profile := testProfile("doubao")
	profile.StabilityThreshold = 0
	s := siteOf(t, newDoubao(profile, page, deps))
	assert.Equal(t, 20, s.stabilityThreshold())

	profile.Selectors.Generating = ".stop"
	s = siteOf(t, newDoubao(profile, page, deps))
	assert.Equal(t, 10, s.stabilityThreshold())

	profile.StabilityThreshold = 4
	s = siteOf(t, newDoubao(profile, page, deps))
	assert.Equal(t, 4, s.stabilityThreshold())
}

func siteOf(t *testing.T, adapter any) *site {
	t.Helper()

	switch a := adapter.(type) {
	case *chatGPT:
		return a.site
	case *perplexity:
		return a.site
	case *gemini:
		return a.site
	case *deepSeek:
		return a.site
	case *kimi:
		return a.site
	case *doubao:
		return a.site
	case *generic:
		return a.site
	}
	t.Fatalf("unexpected adapter type %T", adapter)
	return nil
}
