package dom

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Filter reports whether the subtree rooted at n must be skipped entirely.
type Filter func(n *html.Node) bool

// Any combines filters; a subtree is skipped if any filter rejects it.
func Any(filters ...Filter) Filter {
	return func(n *html.Node) bool {
		for _, f := range filters {
			if f != nil && f(n) {
				return true
			}
		}
		return false
	}
}

// NonContent rejects elements whose text is never rendered as page content.
func NonContent(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

// WithID returns a filter rejecting the element carrying the given id.
func WithID(id string) Filter {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "id") == id
	}
}

// TextNodes yields the text nodes below root in document order, depth-first,
// without descending into subtrees rejected by exclude.
//
// The next sibling is captured before a node is yielded, so the consumer may
// replace the yielded node without disturbing the walk. Nodes inserted in its
// place are not visited.
func TextNodes(root *html.Node, exclude Filter) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		if root == nil {
			return
		}
		walkText(root, exclude, yield)
	}
}

func walkText(n *html.Node, exclude Filter, yield func(*html.Node) bool) bool {
	if exclude != nil && exclude(n) {
		return true
	}
	if n.Type == html.TextNode {
		return yield(n)
	}
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if !walkText(c, exclude, yield) {
			return false
		}
	}
	return true
}

// IsBlank reports whether a text node holds only whitespace.
func IsBlank(n *html.Node) bool {
	return strings.TrimSpace(n.Data) == ""
}

// FindElement returns the first element below root (root included) for which
// match returns true, in document order.
func FindElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// GetElementByID returns the first element below root with the given id.
func GetElementByID(root *html.Node, id string) *html.Node {
	return FindElement(root, func(n *html.Node) bool {
		return Attr(n, "id") == id
	})
}

// Body returns the body element of a parsed document, or doc itself when the
// tree has no body.
func Body(doc *html.Node) *html.Node {
	body := FindElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Body
	})
	if body == nil {
		return doc
	}
	return body
}
