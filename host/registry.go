package host

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/net/html"
)

// Page is a document shown in a tab.
type Page struct {
	Tab      Tab
	Document *html.Node

	listener    Listener
	stylesheets []string
}

// Registry tracks open pages and their listeners. It implements Channel and
// TabSource for pages living in this process.
type Registry struct {
	mu     sync.RWMutex
	pages  map[int]*Page
	active int
}

var (
	_ Channel   = (*Registry)(nil)
	_ TabSource = (*Registry)(nil)
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[int]*Page)}
}

// Open registers doc as the page shown in tab and makes the tab active.
// A page previously shown in the tab is replaced, listener included.
func (r *Registry) Open(tab Tab, doc *html.Node) *Page {
	r.mu.Lock()
	defer r.mu.Unlock()

	page := &Page{Tab: tab, Document: doc}
	r.pages[tab.ID] = page
	r.active = tab.ID
	return page
}

// CloseTab forgets the page shown in tab.
func (r *Registry) CloseTab(tabID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pages, tabID)
	if r.active == tabID {
		r.active = 0
	}
}

// Activate makes tabID the active tab.
func (r *Registry) Activate(tabID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[tabID]; !ok {
		return fmt.Errorf("%w: %d", ErrTabNotFound, tabID)
	}
	r.active = tabID
	return nil
}

// ActiveTab returns the active tab.
func (r *Registry) ActiveTab(_ context.Context) (Tab, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[r.active]
	if !ok {
		return Tab{}, ErrNoActiveTab
	}
	return page.Tab, nil
}

// Page returns the page shown in tabID.
func (r *Registry) Page(tabID int) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[tabID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTabNotFound, tabID)
	}
	return page, nil
}

// Listen installs l as the listener of the page shown in tabID.
func (r *Registry) Listen(tabID int, l Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages[tabID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTabNotFound, tabID)
	}
	page.listener = l
	return nil
}

// Listener returns the listener of the page shown in tabID, or nil.
func (r *Registry) Listener(tabID int) Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page, ok := r.pages[tabID]; ok {
		return page.listener
	}
	return nil
}

// AddStylesheet records that name was installed into the page shown in tabID.
// Installing the same stylesheet twice has no effect.
func (r *Registry) AddStylesheet(tabID int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page, ok := r.pages[tabID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTabNotFound, tabID)
	}
	if !slices.Contains(page.stylesheets, name) {
		page.stylesheets = append(page.stylesheets, name)
	}
	return nil
}

// Stylesheets returns the stylesheets installed into the page shown in tabID.
func (r *Registry) Stylesheets(tabID int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[tabID]
	if !ok {
		return nil
	}
	return slices.Clone(page.stylesheets)
}

// SendToggle delivers the toggle message to the listener of tabID. The
// listener runs without the registry lock held.
func (r *Registry) SendToggle(ctx context.Context, tabID int) error {
	l := r.Listener(tabID)
	if l == nil {
		return fmt.Errorf("%w: tab %d", ErrNoListener, tabID)
	}
	return l.HandleToggle(ctx)
}
