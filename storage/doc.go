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

// Package storage provides the storage abstraction layer for smartfind.
//
// The only persisted data is the expansion cache: answers of term expansion
// backends, so that repeating a search does not repeat the network round
// trip. Highlight sessions are never persisted.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to prevent accidental coupling
// to BadgerDB specifics:
//
//	cache, err := badger.NewExpansionCache(backend)  // returns storage.ExpansionCache
//
// # Usage
//
// Open a persistent cache:
//
//	backend, err := badger.OpenBackend("/path/to/cache", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache, err := badger.NewExpansionCache(backend, badger.WithTTL(7*24*time.Hour))
//	defer cache.Close()
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All cache methods accept context.Context for cancellation
// and timeout support.
package storage
