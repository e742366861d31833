package batch

import "errors"

var (
	// ErrInvalidMaxAttempts indicates maxAttempts parameter is invalid (must be > 0).
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrExpanderRequired indicates a nil term expander was passed to NewRunner.
	ErrExpanderRequired = errors.New("term expander is required")

	// ErrDocumentRequired indicates a document without a tree was submitted.
	ErrDocumentRequired = errors.New("document is required")
)
