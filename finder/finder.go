package finder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/smartfind/ai"
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/dom"
	"github.com/poiesic/smartfind/highlight"
	"github.com/poiesic/smartfind/toolbar"
	"golang.org/x/net/html"
)

// DefaultExpandTimeout bounds a single term expansion request.
const DefaultExpandTimeout = 30 * time.Second

// Result describes a completed search.
type Result struct {
	// Terms is the term set that was highlighted, query first.
	Terms core.Terms
	// Count is the number of matches highlighted.
	Count int
	// ExpansionErr is the error returned by the term expander, if any. The
	// search then ran with the query alone.
	ExpansionErr error
	// Status is the status line shown after the search.
	Status toolbar.Status
}

// Related reports the number of related terms the search ran with.
func (r Result) Related() int {
	return len(r.Terms.Related())
}

// State is a snapshot of the finder.
type State struct {
	Open    bool
	Pending bool
	Query   string
	Terms   []string
	Current int
	Total   int
	Status  toolbar.Status
}

// Finder is the controller of smart search on one document.
type Finder struct {
	mu sync.Mutex

	doc      *html.Node
	body     *html.Node
	expander ai.TermExpander

	bar        *toolbar.Toolbar
	session    *highlight.Session
	summary    toolbar.Status
	generation uint64

	viewport      highlight.Viewport
	monitor       Monitor
	expandTimeout time.Duration
	logger        *slog.Logger
}

// Option configures a Finder.
type Option func(*Finder) error

// WithViewport sets the viewport asked to scroll the current match into view.
func WithViewport(v highlight.Viewport) Option {
	return func(f *Finder) error {
		if v == nil {
			return errors.New("viewport cannot be nil")
		}
		f.viewport = v
		return nil
	}
}

// WithMonitor registers a monitor observing every search.
func WithMonitor(m Monitor) Option {
	return func(f *Finder) error {
		if m == nil {
			return errors.New("monitor cannot be nil")
		}
		f.monitor = m
		return nil
	}
}

// WithExpandTimeout bounds each term expansion request. Zero disables the bound.
func WithExpandTimeout(d time.Duration) Option {
	return func(f *Finder) error {
		if d < 0 {
			return errors.New("expand timeout must not be negative")
		}
		f.expandTimeout = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finder) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		f.logger = logger
		return nil
	}
}

// New creates a finder over doc. The toolbar is mounted into the document's
// body, or into doc itself when it has none.
func New(doc *html.Node, expander ai.TermExpander, opts ...Option) (*Finder, error) {
	if doc == nil {
		return nil, ErrDocumentRequired
	}
	if expander == nil {
		return nil, ErrExpanderRequired
	}

	f := &Finder{
		doc:           doc,
		body:          dom.Body(doc),
		expander:      expander,
		viewport:      highlight.NopViewport{},
		monitor:       &noopMonitor{},
		expandTimeout: DefaultExpandTimeout,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	f.logger = f.logger.With("component", "finder")
	return f, nil
}

// Document returns the document the finder works on.
func (f *Finder) Document() *html.Node {
	return f.doc
}

// Toggle closes the toolbar when it is present in the page and opens it
// otherwise. It reports whether the toolbar is open afterwards.
func (f *Finder) Toggle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if toolbar.Present(f.body) {
		f.closeLocked()
		return false
	}
	f.openLocked()
	return true
}

// HandleToggle toggles the toolbar in response to an activation message.
func (f *Finder) HandleToggle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	open := f.Toggle()
	f.logger.Debug("toggle received", "open", open)
	return nil
}

// Open mounts the toolbar unless it is already present.
func (f *Finder) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar != nil && f.bar.Attached(f.body) {
		return
	}
	f.openLocked()
}

// Close removes the toolbar and every highlight. A pending search is discarded.
func (f *Finder) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeLocked()
}

// Unload reverts the page before it goes away. A pending search is discarded.
func (f *Finder) Unload() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.revertLocked()
	f.generation++
	if f.bar != nil {
		f.bar.SetPending(false)
	}
}

func (f *Finder) openLocked() {
	f.bar = toolbar.Mount(f.body)
	total := 0
	if f.session != nil {
		total = f.session.Len()
	}
	f.bar.SetNavigable(total)
	if f.session != nil {
		f.bar.SetStatus(f.summary)
		f.bar.ShowPosition(f.session.CurrentIndex(), total)
	}
	f.logger.Debug("toolbar opened")
}

func (f *Finder) closeLocked() {
	f.revertLocked()
	if f.bar != nil {
		f.bar.Remove()
	}
	toolbar.Unmount(f.body)
	f.bar = nil
	f.generation++
	f.logger.Debug("toolbar closed")
}

func (f *Finder) revertLocked() {
	if f.session == nil {
		return
	}
	f.session.Revert()
	f.session = nil
	f.summary = toolbar.Status{}
}

// Submit searches for the value of the toolbar's input.
func (f *Finder) Submit(ctx context.Context) (Result, error) {
	f.mu.Lock()
	if f.bar == nil {
		f.mu.Unlock()
		return Result{}, ErrNotOpen
	}
	query := f.bar.Query()
	f.mu.Unlock()
	return f.Search(ctx, query)
}

// Search highlights query and the terms related to it.
//
// Previous highlights are reverted and submission is disabled before the
// expander is called. If the expander fails, the search continues with the
// query alone and the error is reported in Result.ExpansionErr. An empty
// query sets an error status and leaves the page untouched.
func (f *Finder) Search(ctx context.Context, query string) (Result, error) {
	f.mu.Lock()
	bar := f.bar
	if bar == nil || !bar.Attached(f.body) {
		f.mu.Unlock()
		return Result{}, ErrNotOpen
	}
	if bar.Pending() {
		f.mu.Unlock()
		return Result{}, ErrSearchPending
	}
	if err := core.ValidateQuery(query); err != nil {
		bar.SetStatus(toolbar.Error(toolbar.EmptyQueryText))
		f.mu.Unlock()
		return Result{}, err
	}

	query = core.NormalizeTerm(query)
	f.monitor.Start(query)
	f.revertLocked()
	bar.SetQuery(query)
	bar.SetNavigable(0)
	bar.SetPending(true)
	bar.SetStatus(toolbar.Pending())
	generation := f.generation
	f.mu.Unlock()

	related, expandErr := f.expand(ctx, query)
	f.monitor.AfterExpansion(related, expandErr)

	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation || f.bar != bar {
		f.logger.Debug("discarding search result", "query", query)
		return Result{}, ErrSearchDiscarded
	}
	bar.SetPending(false)

	if expandErr != nil {
		if ctx.Err() != nil {
			bar.SetStatus(toolbar.Prompt())
			return Result{}, ctx.Err()
		}
		f.logger.Warn("term expansion failed, searching for query alone", "query", query, "error", expandErr)
		related = nil
	}

	terms, err := core.NewTerms(query, related)
	if err != nil {
		bar.SetStatus(toolbar.Error(toolbar.EmptyQueryText))
		return Result{}, err
	}

	groups, err := highlight.FindMatches(f.body, terms)
	if err != nil {
		bar.SetStatus(toolbar.Error("Error: " + err.Error()))
		return Result{}, fmt.Errorf("failed to match terms: %w", err)
	}
	f.monitor.AfterMatch(groups)

	session := highlight.NewSession(f.body, terms,
		highlight.WithViewport(f.viewport),
		highlight.WithSelectHook(f.showPosition),
	)

	status := searchStatus(highlight.Count(groups), terms, expandErr)
	bar.SetStatus(status)
	count := session.Apply(groups)
	if count != highlight.Count(groups) {
		status = searchStatus(count, terms, expandErr)
		bar.SetStatus(status)
		session.Reselect()
	}
	f.session = session
	f.summary = status
	bar.SetNavigable(count)

	f.logger.Info("search complete", "query", query, "terms", terms.Len(), "matches", count)

	result := Result{
		Terms:        terms,
		Count:        count,
		ExpansionErr: expandErr,
		Status:       bar.Status(),
	}
	f.monitor.Finish(result)
	return result, nil
}

// showPosition writes the match position to whichever toolbar is mounted now.
// Callers hold f.mu.
func (f *Finder) showPosition(current, total int) {
	if f.bar != nil {
		f.bar.ShowPosition(current, total)
	}
}

func (f *Finder) expand(ctx context.Context, query string) ([]string, error) {
	if f.expandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.expandTimeout)
		defer cancel()
	}
	return f.expander.ExpandTerms(ctx, query)
}

// searchStatus picks the status line for a completed search. Zero matches
// with an expander that answered but found nothing related reads differently
// from zero matches for a non-empty term set.
func searchStatus(count int, terms core.Terms, expandErr error) toolbar.Status {
	if count > 0 {
		return toolbar.Summary(count, terms.All())
	}
	if expandErr == nil && len(terms.Related()) == 0 {
		return toolbar.Error(toolbar.NoRelatedText)
	}
	return toolbar.NoMatches(terms.All())
}

// Next moves to the next match, wrapping around.
func (f *Finder) Next() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != nil {
		f.session.Next()
	}
}

// Previous moves to the previous match, wrapping around.
func (f *Finder) Previous() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != nil {
		f.session.Previous()
	}
}

// Current returns the current match, if any.
func (f *Finder) Current() (highlight.Match, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return highlight.Match{}, false
	}
	return f.session.Current()
}

// State returns a snapshot of the finder.
func (f *Finder) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := State{Current: -1}
	if f.bar != nil {
		s.Open = f.bar.Attached(f.body)
		s.Pending = f.bar.Pending()
		s.Query = f.bar.Query()
		s.Status = f.bar.Status()
	}
	if f.session != nil {
		s.Terms = f.session.Terms().All()
		s.Current = f.session.CurrentIndex()
		s.Total = f.session.Len()
	}
	return s
}

// Render serializes the document, highlights and toolbar included, as HTML.
func (f *Finder) Render() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return dom.Render(f.doc)
}
