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

// Package ai provides abstractions for the term expansion services used by
// smartfind.
//
// A search looks for the user's word plus words and short phrases related
// to it. This package defines where those related terms come from, so that
// the highlight engine depends on an abstraction rather than on a provider
// schema.
//
// # Design Principles
//
// The package is designed around two interfaces:
//
//   - TermExpander: Returns terms related to a word
//   - Provider: Aggregates an expander with the identity used to key its
//     cached answers
//
// Callers never fail a search because expansion failed: an error means
// "search for the word alone".
//
// # Implementation Packages
//
//   - ai/openai: Chat completion through any OpenAI-compatible API
//   - ai/datamuse: The Datamuse "means like" word API
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// CachedExpander decorates any TermExpander with a storage.ExpansionCache.
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, datamuse.NewExpander, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockExpander) return CONCRETE types to
// enable test assertions and behavior injection.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithProvider(ai.ProviderDatamuse))
//	provider, err := datamuse.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	related, err := provider.Expander().ExpandTerms(ctx, "river")
package ai
