package host

import (
	"context"

	"golang.org/x/net/html"
)

// Tab identifies a page shown by the browser.
type Tab struct {
	ID  int
	URL string
}

// Listener receives toggle messages inside a page.
type Listener interface {
	HandleToggle(ctx context.Context) error
}

// ListenerFactory creates the listener installed into a page by injection.
type ListenerFactory func(doc *html.Node) (Listener, error)

// Channel delivers the toggle message to the page shown in a tab.
type Channel interface {
	// SendToggle returns ErrNoListener when the page has no listener.
	SendToggle(ctx context.Context, tabID int) error
}

// Injector installs the search script and stylesheet into a tab.
type Injector interface {
	InjectScript(ctx context.Context, tabID int) error
	InjectCSS(ctx context.Context, tabID int) error
}

// TabSource reports the tab the user is looking at.
type TabSource interface {
	ActiveTab(ctx context.Context) (Tab, error)
}
