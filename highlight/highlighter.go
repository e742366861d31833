package highlight

import (
	"strconv"

	"github.com/poiesic/smartfind/dom"
	"golang.org/x/net/html"
)

// Apply wraps every occurrence in groups and returns the number of matches
// added. Groups must come from a Matcher run against the session's root with
// the tree unchanged since; a group whose node has been detached or whose
// text has changed is skipped.
//
// Each matched text node is replaced, in a single substitution, by one span
// holding the unmatched text and a <mark> per occurrence. Indexes continue the
// session's sequence in document order. When the session had no matches and
// at least one is added, the first match becomes current.
func (s *Session) Apply(groups []NodeMatches) int {
	hadMatches := len(s.matches) > 0
	added := 0

	for _, group := range groups {
		node := group.Node
		if node == nil || node.Type != html.TextNode || node.Data != group.Text {
			s.logger.Debug("skipping stale text node")
			continue
		}
		if !dom.Contains(s.root, node) {
			s.logger.Debug("skipping detached text node")
			continue
		}

		wrapper := s.buildWrapper(group)
		if !dom.Replace(node, wrapper) {
			continue
		}
		s.wrappers = append(s.wrappers, wrapper)
		added += len(group.Occurrences)
	}

	s.logger.Debug("applied highlights", "nodes", len(s.wrappers), "matches", added)

	if !hadMatches && len(s.matches) > 0 {
		s.current = 0
		s.Reselect()
	}
	return added
}

// buildWrapper builds the replacement span for one text node and registers
// its marks as matches.
func (s *Session) buildWrapper(group NodeMatches) *html.Node {
	runes := []rune(group.Text)
	wrapper := dom.NewElement("span", "class", WrapperClass)

	last := 0
	for _, occ := range group.Occurrences {
		if occ.Start > last {
			wrapper.AppendChild(dom.NewText(string(runes[last:occ.Start])))
		}

		index := len(s.matches)
		mark := dom.NewElement("mark",
			"class", MarkClass,
			MatchIndexAttr, strconv.Itoa(index),
		)
		text := string(runes[occ.Start:occ.End])
		mark.AppendChild(dom.NewText(text))
		wrapper.AppendChild(mark)

		s.matches = append(s.matches, Match{Index: index, Text: text, Element: mark})
		last = occ.End
	}
	if last < len(runes) {
		wrapper.AppendChild(dom.NewText(string(runes[last:])))
	}
	return wrapper
}
