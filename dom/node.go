package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element. attrs are key/value pairs.
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// TextContent concatenates the text of every text node below n in document
// order, the way the DOM textContent property does.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode, html.DocumentNode:
			collectText(c, sb)
		}
	}
}

// SetText replaces every child of n with a single text node.
func SetText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	if s != "" {
		n.AppendChild(NewText(s))
	}
}

// Replace substitutes replacement for old in old's parent. It returns false,
// leaving both nodes untouched, when old is detached.
func Replace(old, replacement *html.Node) bool {
	parent := old.Parent
	if parent == nil {
		return false
	}
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
	return true
}

// Remove detaches n from its parent if it has one.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Normalize merges adjacent text nodes and drops empty ones throughout the
// subtree rooted at n.
func Normalize(n *html.Node) {
	if n == nil {
		return
	}
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type != html.TextNode {
			Normalize(c)
			continue
		}
		for next != nil && next.Type == html.TextNode {
			c.Data += next.Data
			merged := next
			next = next.NextSibling
			n.RemoveChild(merged)
		}
		if c.Data == "" {
			n.RemoveChild(c)
		}
	}
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	if root == nil {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Closest returns the nearest element among n and its ancestors for which
// match returns true.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && match(p) {
			return p
		}
	}
	return nil
}

// Render serializes n to HTML, returning an empty string on error.
func Render(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
