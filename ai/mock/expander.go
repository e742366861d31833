package mock

import (
	"context"
	"strings"
	"sync"
)

// MockExpander is a test double for ai.TermExpander.
// It allows custom behavior injection via function fields.
type MockExpander struct {
	// ExpandTermsFunc is called by ExpandTerms if set.
	// If nil, answers from Answers and then the default behavior.
	ExpandTermsFunc func(ctx context.Context, word string) ([]string, error)

	// Answers maps lowercased words to canned related terms.
	Answers map[string][]string

	mu        sync.Mutex
	callCount int
	words     []string
}

// NewMockExpander creates a mock expander with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockExpander() *MockExpander {
	return &MockExpander{}
}

// WithAnswer registers the related terms returned for word.
func (m *MockExpander) WithAnswer(word string, related ...string) *MockExpander {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Answers == nil {
		m.Answers = make(map[string][]string)
	}
	m.Answers[strings.ToLower(word)] = related
	return m
}

// WithExpandTermsFunc sets the function called by ExpandTerms.
func (m *MockExpander) WithExpandTermsFunc(fn func(ctx context.Context, word string) ([]string, error)) *MockExpander {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExpandTermsFunc = fn
	return m
}

// ExpandTerms returns the configured answer for word. By default it returns
// word with an "s" appended, or nothing when word already ends in "s".
func (m *MockExpander) ExpandTerms(ctx context.Context, word string) ([]string, error) {
	m.mu.Lock()
	m.callCount++
	m.words = append(m.words, word)
	fn := m.ExpandTermsFunc
	answer, ok := m.Answers[strings.ToLower(word)]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, word)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok {
		out := make([]string, len(answer))
		copy(out, answer)
		return out, nil
	}
	if strings.HasSuffix(word, "s") {
		return []string{}, nil
	}
	return []string{word + "s"}, nil
}

// CallCount returns the number of times ExpandTerms was called.
func (m *MockExpander) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Words returns the words ExpandTerms was called with, in call order.
func (m *MockExpander) Words() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.words))
	copy(out, m.words)
	return out
}

// Reset clears the call count and injected behavior.
func (m *MockExpander) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.words = nil
	m.ExpandTermsFunc = nil
	m.Answers = nil
}
