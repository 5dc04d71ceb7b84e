package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseSelect parses markup and resolves a CSS selector against it, returning the tree and
// the simplified nodes matching selector in document order.
func ParseSelect(markup, selector string) (*Node, []*Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, nil, fmt.Errorf("parse html: %w", err)
	}

	index := make(map[*html.Node]*Node)
	root := fromHTML(doc, index)
	if strings.TrimSpace(selector) == "" {
		return root, nil, nil
	}

	var matches []*Node
	goquery.NewDocumentFromNode(doc).Find(selector).Each(func(_ int, sel *goquery.Selection) {
		for _, src := range sel.Nodes {
			if n, ok := index[src]; ok {
				matches = append(matches, n)
			}
		}
	})
	return root, matches, nil
}
