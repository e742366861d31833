// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "fmt"

// ValidateQuery reports whether the raw search input can start a search.
func ValidateQuery(query string) error {
	if NormalizeTerm(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// ValidateTerms validates a Terms value according to domain rules.
//
// Validation rules:
//   - At least one term (the query) must be present
//   - Every term must be non-empty after trimming
func ValidateTerms(terms Terms) error {
	if terms.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidTerms, ErrEmptyQuery)
	}
	for i, term := range terms.items {
		if NormalizeTerm(term) == "" {
			return fmt.Errorf("%w: term %d: %w", ErrInvalidTerms, i, ErrEmptyTerm)
		}
	}
	return nil
}
