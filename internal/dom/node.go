// Package dom holds a simplified DOM tree and pure traversal helpers used to locate
// citation panels and their toggles without a live browser.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

type Node struct {
	Type     NodeType
	Tag      string
	Attrs    map[string]string
	Data     string
	Parent   *Node
	Children []*Node
}

// Parse builds a simplified tree from markup. Comments, doctypes and script/style bodies are dropped.
func Parse(markup string) (*Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return fromHTML(doc, nil), nil
}

// fromHTML converts doc, recording the simplified node built for each source element in index when non-nil.
func fromHTML(doc *html.Node, index map[*html.Node]*Node) *Node {
	root := &Node{Type: ElementNode, Tag: "#document", Attrs: map[string]string{}}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		convert(c, root, index)
	}
	return root
}

func convert(src *html.Node, parent *Node, index map[*html.Node]*Node) {
	switch src.Type {
	case html.TextNode:
		if strings.TrimSpace(src.Data) == "" {
			return
		}
		parent.Children = append(parent.Children, &Node{Type: TextNode, Data: src.Data, Parent: parent})
	case html.ElementNode:
		n := &Node{Type: ElementNode, Tag: strings.ToLower(src.Data), Attrs: make(map[string]string, len(src.Attr)), Parent: parent}
		for _, a := range src.Attr {
			n.Attrs[a.Key] = a.Val
		}
		parent.Children = append(parent.Children, n)
		if index != nil {
			index[src] = n
		}
		if n.Tag == "script" || n.Tag == "style" || n.Tag == "noscript" {
			return
		}
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			convert(c, n, index)
		}
	}
}

func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode && n.Tag != "#document"
}

func (n *Node) Attr(key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent concatenates descendant text with whitespace collapsed.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Walk visits n and its descendants depth-first; returning false skips a subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// Index is the 1-based position of n among its parent's element children.
func (n *Node) Index() int {
	if n.Parent == nil {
		return 1
	}
	for i, c := range n.Parent.ElementChildren() {
		if c == n {
			return i + 1
		}
	}
	return 0
}

func (n *Node) NextElementSiblings() []*Node {
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.ElementChildren()
	idx := n.Index()
	if idx == 0 || idx >= len(siblings) {
		return nil
	}
	return siblings[idx:]
}

func (n *Node) PrevElementSiblings() []*Node {
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.ElementChildren()
	idx := n.Index()
	if idx <= 1 {
		return nil
	}
	prev := make([]*Node, 0, idx-1)
	for i := idx - 2; i >= 0; i-- {
		prev = append(prev, siblings[i])
	}
	return prev
}
