package highlight

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/dom"
	"golang.org/x/net/html"
)

const (
	// ToolbarID is the reserved id of the toolbar subtree. Text under it is never matched.
	ToolbarID = "smart-search-bar"
)

// Occurrence is one match inside a text node. Start and End are rune offsets
// into the node's original text.
type Occurrence struct {
	Start int
	End   int
	Text  string
}

// NodeMatches groups the occurrences found in a single text node.
type NodeMatches struct {
	Node        *html.Node
	Text        string
	Occurrences []Occurrence
}

// Matcher locates whole-word, case-insensitive occurrences of a term set.
type Matcher struct {
	re      *regexp2.Regexp
	exclude dom.Filter
}

// patternEscaper escapes the regex metacharacters of a literal term.
var patternEscaper = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `*`, `\*`, `+`, `\+`, `?`, `\?`, `^`, `\^`, `$`, `\$`,
	`{`, `\{`, `}`, `\}`, `(`, `\(`, `)`, `\)`, `|`, `\|`, `[`, `\[`, `]`, `\]`,
)

// NewMatcher compiles terms into a single alternation bounded by word
// boundaries at each end. Terms are matched literally; multi-word terms match
// as whole phrases.
func NewMatcher(terms core.Terms) (*Matcher, error) {
	if err := core.ValidateTerms(terms); err != nil {
		return nil, err
	}

	all := terms.All()
	escaped := make([]string, len(all))
	for i, term := range all {
		escaped[i] = patternEscaper.Replace(term)
	}
	pattern := `\b(` + strings.Join(escaped, "|") + `)\b`

	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling term pattern: %w", err)
	}

	return &Matcher{
		re:      re,
		exclude: dom.Any(dom.NonContent, dom.WithID(ToolbarID)),
	}, nil
}

// Matches lazily yields the matched text nodes below root in document order.
// Whitespace-only nodes and excluded subtrees are never inspected.
func (m *Matcher) Matches(root *html.Node) iter.Seq2[NodeMatches, error] {
	return func(yield func(NodeMatches, error) bool) {
		for n := range dom.TextNodes(root, m.exclude) {
			if dom.IsBlank(n) {
				continue
			}
			occurrences, err := m.scan(n.Data)
			if err != nil {
				yield(NodeMatches{}, err)
				return
			}
			if len(occurrences) == 0 {
				continue
			}
			if !yield(NodeMatches{Node: n, Text: n.Data, Occurrences: occurrences}, nil) {
				return
			}
		}
	}
}

// FindMatches collects every matched text node below root.
func (m *Matcher) FindMatches(root *html.Node) ([]NodeMatches, error) {
	var groups []NodeMatches
	for group, err := range m.Matches(root) {
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (m *Matcher) scan(text string) ([]Occurrence, error) {
	runes := []rune(text)
	match, err := m.re.FindRunesMatch(runes)
	var occurrences []Occurrence
	for match != nil && err == nil {
		occurrences = append(occurrences, Occurrence{
			Start: match.Index,
			End:   match.Index + match.Length,
			Text:  match.String(),
		})
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning text: %w", err)
	}
	return occurrences, nil
}

// FindMatches compiles terms and collects every matched text node below root.
func FindMatches(root *html.Node, terms core.Terms) ([]NodeMatches, error) {
	m, err := NewMatcher(terms)
	if err != nil {
		return nil, err
	}
	return m.FindMatches(root)
}

// Count returns the total number of occurrences across groups.
func Count(groups []NodeMatches) int {
	total := 0
	for _, g := range groups {
		total += len(g.Occurrences)
	}
	return total
}
