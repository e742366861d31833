package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"golang.org/x/text/unicode/norm"
)

// ID is a content-derived identifier used to key cached data.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Terms is the ordered set of literal words or phrases searched in one pass.
// The first term is always the user's query; the rest come from term expansion.
// Duplicates are tolerated. A Terms value never changes after construction.
type Terms struct {
	items []string
}

// NewTerms builds a term set from the query and its related terms.
// Every term is NFC-normalized and trimmed; empty related terms are dropped.
// Returns ErrEmptyQuery if the query is empty after trimming.
func NewTerms(query string, related []string) (Terms, error) {
	q := NormalizeTerm(query)
	if q == "" {
		return Terms{}, ErrEmptyQuery
	}

	items := make([]string, 0, len(related)+1)
	items = append(items, q)
	for _, r := range related {
		r = NormalizeTerm(r)
		if r == "" {
			continue
		}
		items = append(items, r)
	}
	return Terms{items: items}, nil
}

// Query returns the searched term. Empty for the zero value.
func (t Terms) Query() string {
	if len(t.items) == 0 {
		return ""
	}
	return t.items[0]
}

// All returns a copy of every term, query first.
func (t Terms) All() []string {
	out := make([]string, len(t.items))
	copy(out, t.items)
	return out
}

// Related returns a copy of the expansion terms (everything after the query).
func (t Terms) Related() []string {
	if len(t.items) < 2 {
		return []string{}
	}
	out := make([]string, len(t.items)-1)
	copy(out, t.items[1:])
	return out
}

// Len returns the number of terms including the query.
func (t Terms) Len() int {
	return len(t.items)
}

// IsZero reports whether t was never initialized.
func (t Terms) IsZero() bool {
	return len(t.items) == 0
}

// NormalizeTerm trims whitespace and converts text to NFC so that composed and
// decomposed spellings of the same word compare equal.
func NormalizeTerm(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// CacheKey returns the case-insensitive key under which expansions of query
// are cached for the given provider and model.
func CacheKey(provider, model, query string) ID {
	return IDFromContent(provider + "\x00" + model + "\x00" + strings.ToLower(NormalizeTerm(query)))
}

// Expansion is a cached answer of a term expansion backend. Key is
// CacheKey(Provider, Model, Query); FetchedAt is when the backend answered.
type Expansion struct {
	Key       ID
	Provider  string
	Model     string
	Query     string
	Terms     []string
	FetchedAt time.Time
}

// NewExpansion builds the cache record for an answer received at fetchedAt.
func NewExpansion(provider, model, query string, terms []string, fetchedAt time.Time) *Expansion {
	t := make([]string, len(terms))
	copy(t, terms)
	return &Expansion{
		Key:       CacheKey(provider, model, query),
		Provider:  provider,
		Model:     model,
		Query:     NormalizeTerm(query),
		Terms:     t,
		FetchedAt: fetchedAt,
	}
}
