package highlight

import "github.com/poiesic/smartfind/dom"

// Next moves the cursor forward, wrapping to the first match after the last.
// It is a no-op when there are no matches.
func (s *Session) Next() {
	if len(s.matches) == 0 {
		return
	}
	s.current++
	if s.current >= len(s.matches) {
		s.current = 0
	}
	s.Reselect()
}

// Previous moves the cursor backward, wrapping to the last match before the first.
// It is a no-op when there are no matches.
func (s *Session) Previous() {
	if len(s.matches) == 0 {
		return
	}
	s.current--
	if s.current < 0 {
		s.current = len(s.matches) - 1
	}
	s.Reselect()
}

// Select moves the cursor to index if it is in range.
func (s *Session) Select(index int) bool {
	if index < 0 || index >= len(s.matches) {
		return false
	}
	s.current = index
	s.Reselect()
	return true
}

// Reselect moves the current marker to the match under the cursor and scrolls
// it into view. Elements detached by page code are skipped silently.
func (s *Session) Reselect() {
	if s.marked != nil {
		if dom.Contains(s.root, s.marked) {
			dom.RemoveClass(s.marked, CurrentClass)
		}
		s.marked = nil
	}

	match, ok := s.Current()
	if !ok {
		return
	}

	if dom.Contains(s.root, match.Element) {
		dom.AddClass(match.Element, CurrentClass)
		s.marked = match.Element
		s.viewport.ScrollIntoView(match.Element, CenteredSmooth)
	} else {
		s.logger.Debug("current match detached", "index", match.Index)
	}

	if s.onSelect != nil {
		s.onSelect(s.current, len(s.matches))
	}
}
