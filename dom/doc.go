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

// Package dom provides the small slice of document-tree operations smartfind
// needs on top of golang.org/x/net/html: a filtered depth-first text walker,
// text content, node replacement, sibling text normalization, attachment
// checks and class/attribute helpers.
//
// Every helper tolerates nodes that page code has detached from the tree;
// operations on a detached node are no-ops rather than failures.
package dom
