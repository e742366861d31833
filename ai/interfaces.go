package ai

import "context"

// TermExpander returns words and short phrases related to a search term.
// Implementations must be thread-safe for concurrent use.
type TermExpander interface {
	// ExpandTerms returns terms related to word, excluding word itself where
	// the backend makes that possible. The result may be empty. Callers must
	// treat an error as "no related terms" and keep searching for word alone.
	ExpandTerms(ctx context.Context, word string) ([]string, error)
}

// Provider aggregates a term expansion backend with the identity used to key
// its cached answers.
type Provider interface {
	// Expander returns the term expansion service.
	// The returned TermExpander is safe for concurrent use.
	Expander() TermExpander

	// Name identifies the backend, e.g. "openai" or "datamuse".
	Name() string

	// Model identifies the model answering requests. Backends without a
	// model choice return "".
	Model() string

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
