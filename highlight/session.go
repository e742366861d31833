package highlight

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/poiesic/smartfind/core"
	"golang.org/x/net/html"
)

const (
	// MarkClass is carried by every marked element.
	MarkClass = "smart-search-highlight"
	// CurrentClass marks the element of the current match.
	CurrentClass = "current-match"
	// WrapperClass is carried by the span replacing a matched text node.
	WrapperClass = "smart-search-wrapper"
	// MatchIndexAttr holds the global sequence index of a marked element.
	MatchIndexAttr = "data-match-index"
)

// Match is one in-page occurrence of a term. Element is the live marked
// element rendering it; page code may detach it at any time.
type Match struct {
	Index   int
	Text    string
	Element *html.Node
}

// Session is the state of one highlight pass over a document: the matches,
// the wrappers that replaced matched text nodes, and the current-match cursor.
// A Session is not safe for concurrent use; callers serialize access.
type Session struct {
	id       uuid.UUID
	root     *html.Node
	terms    core.Terms
	matches  []Match
	wrappers []*html.Node
	current  int
	marked   *html.Node
	viewport Viewport
	onSelect func(current, total int)
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithViewport sets the viewport asked to scroll the current match into view.
// Default is a no-op viewport.
func WithViewport(v Viewport) SessionOption {
	return func(s *Session) {
		if v == nil {
			v = NopViewport{}
		}
		s.viewport = v
	}
}

// WithSelectHook registers a callback run after every reselection with the
// zero-based current index and the total number of matches.
func WithSelectHook(fn func(current, total int)) SessionOption {
	return func(s *Session) {
		s.onSelect = fn
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSession creates an empty session over the subtree rooted at root.
func NewSession(root *html.Node, terms core.Terms, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.New(),
		root:     root,
		terms:    terms,
		current:  -1,
		viewport: NopViewport{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "highlight-session", "session", s.id.String())
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Terms returns the term set the session was created for.
func (s *Session) Terms() core.Terms {
	return s.terms
}

// Len returns the number of matches.
func (s *Session) Len() int {
	return len(s.matches)
}

// Empty reports whether the session holds no matches.
func (s *Session) Empty() bool {
	return len(s.matches) == 0
}

// Matches returns a copy of the matches in sequence order.
func (s *Session) Matches() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// CurrentIndex returns the cursor, or -1 when there are no matches.
func (s *Session) CurrentIndex() int {
	return s.current
}

// Current returns the current match, if any.
func (s *Session) Current() (Match, bool) {
	if s.current < 0 || s.current >= len(s.matches) {
		return Match{}, false
	}
	return s.matches[s.current], true
}

// Wrappers returns the number of tracked wrapper elements.
func (s *Session) Wrappers() int {
	return len(s.wrappers)
}
