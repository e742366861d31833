package toolbar

import (
	"fmt"
	"strings"
)

// Kind classifies a status line. Each kind has its own color.
type Kind int

const (
	// KindIdle is the prompt shown before any search.
	KindIdle Kind = iota
	// KindPending is shown while related terms are being fetched.
	KindPending
	// KindError covers input errors, empty expansions and zero matches.
	KindError
	// KindResult is the match summary.
	KindResult
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindPending:
		return "pending"
	case KindError:
		return "error"
	case KindResult:
		return "result"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Color returns the CSS color of the kind, or "" for the default color.
func (k Kind) Color() string {
	switch k {
	case KindPending:
		return "#5f6368"
	case KindError:
		return "#d32f2f"
	case KindResult:
		return "#1a73e8"
	default:
		return ""
	}
}

// Status is the text and kind of the status line.
type Status struct {
	Kind Kind
	Text string
}

// Status line messages.
const (
	PromptText     = "Press Enter or click Search to find similar words"
	EmptyQueryText = "Please enter a search term"
	PendingText    = "Fetching similar words..."
	NoRelatedText  = "No similar words found"
)

// summaryTerms is how many terms a status line lists before abbreviating.
const summaryTerms = 5

// positionSep separates the summary from the current match position.
const positionSep = " | Match "

// Prompt is the status of a freshly created toolbar.
func Prompt() Status {
	return Status{Kind: KindIdle, Text: PromptText}
}

// Pending is the status shown while an expansion request is in flight.
func Pending() Status {
	return Status{Kind: KindPending, Text: PendingText}
}

// Error reports a failure to the user.
func Error(text string) Status {
	return Status{Kind: KindError, Text: text}
}

// NoMatches reports that none of terms occurs on the page.
func NoMatches(terms []string) Status {
	text := "No matches found on page for: " + joinFirst(terms)
	if len(terms) > summaryTerms {
		text += "..."
	}
	return Status{Kind: KindError, Text: text}
}

// Summary reports count matches for terms.
func Summary(count int, terms []string) Status {
	text := fmt.Sprintf("Found %d matches | Searching: %s", count, joinFirst(terms))
	if len(terms) > summaryTerms {
		text += fmt.Sprintf(" +%d more", len(terms)-summaryTerms)
	}
	return Status{Kind: KindResult, Text: text}
}

// WithPosition replaces any position suffix of text with the one-based
// position of the current match.
func WithPosition(text string, current, total int) string {
	base, _, _ := strings.Cut(text, positionSep)
	return fmt.Sprintf("%s%s%d/%d", base, positionSep, current+1, total)
}

func joinFirst(terms []string) string {
	if len(terms) > summaryTerms {
		terms = terms[:summaryTerms]
	}
	return strings.Join(terms, ", ")
}
