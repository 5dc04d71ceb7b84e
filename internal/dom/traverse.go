package dom

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher decides whether an element is the node being searched for.
type Matcher func(*Node) bool

// TextMatcher matches elements whose collapsed text matches pattern.
func TextMatcher(pattern *regexp.Regexp) Matcher {
	return func(n *Node) bool {
		return n.IsElement() && pattern.MatchString(n.TextContent())
	}
}

// FindDeepest returns the innermost elements under root accepted by match.
func FindDeepest(root *Node, match Matcher) []*Node {
	var out []*Node
	var visit func(*Node) bool
	visit = func(n *Node) bool {
		found := false
		for _, c := range n.Children {
			if c.IsElement() && visit(c) {
				found = true
			}
		}
		if found {
			return true
		}
		if n.IsElement() && match(n) {
			out = append(out, n)
			return true
		}
		return false
	}
	visit(root)
	return out
}

// FindFirst returns the first element in document order accepted by match.
func FindFirst(root *Node, match Matcher) *Node {
	var hit *Node
	root.Walk(func(n *Node) bool {
		if hit != nil {
			return false
		}
		if n.IsElement() && match(n) {
			hit = n
			return false
		}
		return true
	})
	return hit
}

// FindToggle looks for a toggle near start: first inside start, then among the siblings
// of start and of each ancestor, climbing at most maxHops levels.
func FindToggle(start *Node, isToggle Matcher, maxHops int) *Node {
	if start == nil {
		return nil
	}
	if hit := deepestIn(start, isToggle); hit != nil {
		return hit
	}

	cur := start
	for hop := 0; hop <= maxHops && cur != nil && cur.IsElement(); hop++ {
		for _, sib := range cur.NextElementSiblings() {
			if hit := deepestIn(sib, isToggle); hit != nil {
				return hit
			}
		}
		for _, sib := range cur.PrevElementSiblings() {
			if hit := deepestIn(sib, isToggle); hit != nil {
				return hit
			}
		}
		cur = cur.Parent
	}
	return nil
}

func deepestIn(n *Node, match Matcher) *Node {
	hits := FindDeepest(n, match)
	if len(hits) == 0 {
		return nil
	}
	return hits[0]
}

// Clickable climbs from n to the nearest element a user would click.
func Clickable(n *Node) *Node {
	for cur := n; cur != nil && cur.IsElement(); cur = cur.Parent {
		switch {
		case cur.Tag == "button", cur.Tag == "summary", cur.Tag == "a":
			return cur
		case cur.Attr("role") == "button", cur.Attr("tabindex") == "0":
			return cur
		}
	}
	return n
}

// CSSPath renders an absolute nth-child selector that addresses n in the live page.
func CSSPath(n *Node) string {
	var parts []string
	for cur := n; cur != nil && cur.IsElement(); cur = cur.Parent {
		switch cur.Tag {
		case "html", "body", "head":
			parts = append(parts, cur.Tag)
		default:
			parts = append(parts, fmt.Sprintf("%s:nth-child(%d)", cur.Tag, cur.Index()))
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}
