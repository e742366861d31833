package highlight

import "golang.org/x/net/html"

// ScrollOptions mirrors the scrollIntoView options of a browser host.
type ScrollOptions struct {
	Block    string // "center", "start", "end" or "nearest"
	Behavior string // "smooth" or "auto"
}

// CenteredSmooth is the scroll request issued for every new current match.
var CenteredSmooth = ScrollOptions{Block: "center", Behavior: "smooth"}

// Viewport brings an element into view. Hosts without smooth scrolling may
// ignore Behavior.
type Viewport interface {
	ScrollIntoView(el *html.Node, opts ScrollOptions)
}

// NopViewport ignores scroll requests.
type NopViewport struct{}

// ScrollIntoView does nothing.
func (NopViewport) ScrollIntoView(*html.Node, ScrollOptions) {}

// ViewportFunc adapts a function to the Viewport interface.
type ViewportFunc func(el *html.Node, opts ScrollOptions)

// ScrollIntoView calls f.
func (f ViewportFunc) ScrollIntoView(el *html.Node, opts ScrollOptions) {
	f(el, opts)
}
