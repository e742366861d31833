package ai

import (
	"strings"
	"unicode/utf8"
)

// SplitTerms parses a model answer formatted as a comma-separated list of
// short phrases. Line breaks separate entries too. Each entry is trimmed of
// whitespace and stray quoting; entries of at most one character are dropped.
func SplitTerms(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = scrubTerm(f)
		if utf8.RuneCountInString(f) <= 1 {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// scrubTerm removes surrounding whitespace, quotes and trailing punctuation.
func scrubTerm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimRight(s, ".;:!")
	return strings.TrimSpace(s)
}

// DropEcho removes entries equal to word, ignoring case.
func DropEcho(terms []string, word string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.EqualFold(t, word) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// LimitTerms returns at most n leading terms. n <= 0 means no limit.
func LimitTerms(terms []string, n int) []string {
	if n <= 0 || len(terms) <= n {
		return terms
	}
	return terms[:n]
}
