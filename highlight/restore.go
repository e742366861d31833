package highlight

import "github.com/poiesic/smartfind/dom"

// Revert replaces every tracked wrapper with a plain text node holding its
// current text, merges the resulting adjacent text nodes, and clears the
// session. Wrappers already detached by page code are skipped. Revert is
// safe to call on an empty session and may be called more than once.
func (s *Session) Revert() {
	restored := 0
	for _, wrapper := range s.wrappers {
		parent := wrapper.Parent
		if parent == nil || !dom.Contains(s.root, wrapper) {
			continue
		}
		if dom.Replace(wrapper, dom.NewText(dom.TextContent(wrapper))) {
			dom.Normalize(parent)
			restored++
		}
	}

	if len(s.wrappers) > 0 {
		s.logger.Debug("reverted highlights", "restored", restored, "tracked", len(s.wrappers))
	}

	s.wrappers = nil
	s.matches = nil
	s.marked = nil
	s.current = -1
}
