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

package mock

import "github.com/poiesic/smartfind/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	expander *MockExpander
	name     string
	model    string
	closed   bool
}

// NewMockProvider creates a new mock provider with a default mock expander.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockExpander() to access the concrete type for test assertions.
func NewMockProvider() ai.Provider {
	return NewMockProviderWithExpander(NewMockExpander())
}

// NewMockProviderWithExpander creates a mock provider around a custom mock
// expander. This allows full control over its behavior.
func NewMockProviderWithExpander(expander *MockExpander) *MockProvider {
	return &MockProvider{
		expander: expander,
		name:     "mock",
		model:    "mock-model",
	}
}

// Expander returns the mock expander.
func (p *MockProvider) Expander() ai.TermExpander {
	return p.expander
}

// Name returns "mock".
func (p *MockProvider) Name() string {
	return p.name
}

// Model returns "mock-model".
func (p *MockProvider) Model() string {
	return p.model
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockExpander returns the underlying mock expander for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockExpander() *MockExpander {
	return p.expander
}
