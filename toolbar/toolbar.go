package toolbar

import (
	"github.com/poiesic/smartfind/dom"
	"github.com/poiesic/smartfind/highlight"
	"golang.org/x/net/html"
)

// Element ids reserved by the toolbar.
const (
	ID             = highlight.ToolbarID
	InputID        = "search-input"
	SearchButtonID = "search-btn"
	PrevButtonID   = "prev-btn"
	NextButtonID   = "next-btn"
	CloseButtonID  = "close-btn"
	StatusID       = "search-status"
	LoaderID       = "search-loader"
)

// Toolbar is the inline search toolbar living inside the page tree.
//
// Page code may remove any of its pieces; every setter skips elements that
// can no longer be found.
type Toolbar struct {
	el      *html.Node
	status  Status
	pending bool
}

// Mount builds a toolbar and appends it to body. A toolbar already present
// under body is removed first.
func Mount(body *html.Node) *Toolbar {
	if existing := dom.GetElementByID(body, ID); existing != nil {
		dom.Remove(existing)
	}

	t := &Toolbar{el: build(), status: Prompt()}
	body.AppendChild(t.el)
	return t
}

// Unmount removes every toolbar found under body. It reports whether one was
// present.
func Unmount(body *html.Node) bool {
	removed := false
	for {
		el := dom.GetElementByID(body, ID)
		if el == nil {
			return removed
		}
		dom.Remove(el)
		removed = true
	}
}

// Present reports whether a toolbar is attached under body.
func Present(body *html.Node) bool {
	return dom.GetElementByID(body, ID) != nil
}

func build() *html.Node {
	bar := dom.NewElement("div", "id", ID)

	header := dom.NewElement("div", "class", "search-header")
	header.AppendChild(dom.NewElement("input",
		"type", "text",
		"id", InputID,
		"placeholder", "Search for word...",
		"autocomplete", "off",
	))
	header.AppendChild(button(SearchButtonID, "Search", "Search", false))
	header.AppendChild(button(PrevButtonID, "Previous match", "↑", true))
	header.AppendChild(button(NextButtonID, "Next match", "↓", true))
	header.AppendChild(button(CloseButtonID, "Close", "×", false))
	bar.AppendChild(header)

	status := dom.NewElement("div", "id", StatusID)
	status.AppendChild(dom.NewText(PromptText))
	bar.AppendChild(status)

	loader := dom.NewElement("div", "id", LoaderID, "style", "display: none;")
	loader.AppendChild(dom.NewElement("div", "class", "loader-spinner"))
	bar.AppendChild(loader)

	return bar
}

func button(id, title, label string, disabled bool) *html.Node {
	b := dom.NewElement("button", "id", id, "title", title)
	if disabled {
		dom.SetAttr(b, "disabled", "")
	}
	b.AppendChild(dom.NewText(label))
	return b
}

// Element returns the toolbar's root element.
func (t *Toolbar) Element() *html.Node {
	return t.el
}

// Attached reports whether the toolbar is still part of the tree under root.
func (t *Toolbar) Attached(root *html.Node) bool {
	return dom.Contains(root, t.el)
}

// Remove detaches the toolbar from the page.
func (t *Toolbar) Remove() {
	dom.Remove(t.el)
}

func (t *Toolbar) find(id string) *html.Node {
	return dom.GetElementByID(t.el, id)
}

// Query returns the raw value of the search input.
func (t *Toolbar) Query() string {
	input := t.find(InputID)
	if input == nil {
		return ""
	}
	return dom.Attr(input, "value")
}

// SetQuery replaces the value of the search input.
func (t *Toolbar) SetQuery(q string) {
	if input := t.find(InputID); input != nil {
		dom.SetAttr(input, "value", q)
	}
}

// Status returns the status last set on the toolbar.
func (t *Toolbar) Status() Status {
	return t.status
}

// SetStatus updates the status line text and color.
func (t *Toolbar) SetStatus(s Status) {
	t.status = s
	el := t.find(StatusID)
	if el == nil {
		return
	}
	dom.SetText(el, s.Text)
	if color := s.Kind.Color(); color != "" {
		dom.SetAttr(el, "style", "color: "+color+";")
	} else {
		dom.RemoveAttr(el, "style")
	}
}

// ShowPosition appends the one-based position of the current match to the
// status line, replacing any previous position.
func (t *Toolbar) ShowPosition(current, total int) {
	if current < 0 || total == 0 {
		return
	}
	t.SetStatus(Status{Kind: t.status.Kind, Text: WithPosition(t.status.Text, current, total)})
}

// Pending reports whether the toolbar shows the pending indicator.
func (t *Toolbar) Pending() bool {
	return t.pending
}

// SetPending shows or hides the loader and disables the search button while
// a request is in flight.
func (t *Toolbar) SetPending(pending bool) {
	t.pending = pending
	if loader := t.find(LoaderID); loader != nil {
		if pending {
			dom.SetAttr(loader, "style", "display: flex;")
		} else {
			dom.SetAttr(loader, "style", "display: none;")
		}
	}
	setDisabled(t.find(SearchButtonID), pending)
}

// SetNavigable enables the previous and next buttons iff total > 0.
func (t *Toolbar) SetNavigable(total int) {
	disabled := total == 0
	setDisabled(t.find(PrevButtonID), disabled)
	setDisabled(t.find(NextButtonID), disabled)
}

// Disabled reports whether the element with id is disabled. Missing elements
// count as disabled.
func (t *Toolbar) Disabled(id string) bool {
	el := t.find(id)
	return el == nil || dom.HasAttr(el, "disabled")
}

func setDisabled(el *html.Node, disabled bool) {
	if el == nil {
		return
	}
	if disabled {
		dom.SetAttr(el, "disabled", "")
	} else {
		dom.RemoveAttr(el, "disabled")
	}
}
