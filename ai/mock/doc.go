// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.TermExpander and
// ai.Provider for use in unit tests. The mocks allow tests to run without
// external services and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Canned answers
//	expander := mock.NewMockExpander().WithAnswer("cat", "kitten", "feline")
//
//	// Custom behavior injection
//	failing := mock.NewMockExpander().
//	    WithExpandTermsFunc(func(ctx context.Context, word string) ([]string, error) {
//	        return nil, errors.New("service down")
//	    })
//
//	// Check call counts
//	count := expander.CallCount()
//
// # Default Behavior
//
// Without canned answers MockExpander returns the word with an "s" appended,
// which keeps whole-word matching tests honest about plurals.
package mock
