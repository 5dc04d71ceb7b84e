package dom

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type RawLink struct {
	Title string
	URL   string
}

// SelectLinks returns one link per element matching selector. An element that is not
// itself an anchor contributes its first descendant anchor.
//
// A non-empty answer selector limits the result to the newest answer: items inside the last
// element matching answer win, otherwise items inside earlier answers are dropped and items
// outside every answer are kept.
func SelectLinks(markup, selector, answer string) ([]RawLink, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse panel markup: %w", err)
	}

	items := doc.Find(selector)
	if strings.TrimSpace(answer) != "" {
		if answers := doc.Find(answer); answers.Length() > 0 {
			newest := answers.Last()
			if own := newest.Find(selector); own.Length() > 0 {
				items = own
			} else {
				earlier := answers.Slice(0, answers.Length()-1)
				items = items.NotSelection(earlier.Find(selector))
			}
		}
	}

	var links []RawLink
	items.Each(func(_ int, sel *goquery.Selection) {
		anchor := sel
		if goquery.NodeName(sel) != "a" {
			anchor = sel.Find("a[href]").First()
		}
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		links = append(links, RawLink{Title: linkTitle(sel, anchor), URL: href})
	})

	return links, nil
}

func linkTitle(item, anchor *goquery.Selection) string {
	for _, attr := range []string{"title", "aria-label"} {
		if v, ok := anchor.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return collapse(v)
		}
	}
	if heading := item.Find("h1, h2, h3, h4, [class*='title']").First(); heading.Length() > 0 {
		if text := collapse(heading.Text()); text != "" {
			return text
		}
	}
	if text := collapse(anchor.Text()); text != "" {
		return text
	}
	return collapse(item.Text())
}

// LinksUnder collects anchors below n in document order.
func LinksUnder(n *Node) []RawLink {
	var links []RawLink
	n.Walk(func(c *Node) bool {
		if c.IsElement() && c.Tag == "a" && c.Attr("href") != "" {
			title := c.Attr("title")
			if title == "" {
				title = c.TextContent()
			}
			links = append(links, RawLink{Title: collapse(title), URL: c.Attr("href")})
			return false
		}
		return true
	})
	return links
}

// NormalizeReferences converts raw links into canonical references: http(s) only,
// deduplicated by URL, numbered from 1 in input order.
func NormalizeReferences(raw []RawLink) []domain.Reference {
	refs := make([]domain.Reference, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, link := range raw {
		parsed, err := url.Parse(strings.TrimSpace(link.URL))
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			continue
		}
		parsed.Fragment = ""
		normalized := parsed.String()
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}

		source := HostDomain(parsed.Hostname())
		title := collapse(link.Title)
		if title == "" {
			title = source
		}
		refs = append(refs, domain.Reference{
			Position: len(refs) + 1,
			Domain:   source,
			Title:    title,
			URL:      normalized,
		})
	}

	return refs
}

// ReferencesOrFallback prefers explicit references and reuses search results only when none exist.
func ReferencesOrFallback(references, searchResults []domain.Reference) []domain.Reference {
	if len(references) > 0 {
		return Renumber(references)
	}
	return Renumber(searchResults)
}

func Renumber(refs []domain.Reference) []domain.Reference {
	out := make([]domain.Reference, len(refs))
	for i, ref := range refs {
		ref.Position = i + 1
		out[i] = ref
	}
	return out
}

func HostDomain(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
