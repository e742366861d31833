package finder

import "errors"

var (
	// ErrDocumentRequired indicates a nil document was passed to New.
	ErrDocumentRequired = errors.New("document is required")

	// ErrExpanderRequired indicates a nil term expander was passed to New.
	ErrExpanderRequired = errors.New("term expander is required")

	// ErrNotOpen indicates a search was submitted while the toolbar is closed.
	ErrNotOpen = errors.New("search toolbar is not open")

	// ErrSearchPending indicates a search was submitted while another one is
	// waiting for related terms.
	ErrSearchPending = errors.New("a search is already pending")

	// ErrSearchDiscarded indicates the toolbar was closed or the page unloaded
	// while the search was waiting for related terms; its result was dropped.
	ErrSearchDiscarded = errors.New("search discarded")
)
