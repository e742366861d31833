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

// Package highlight finds, marks and steps through term occurrences in an
// HTML document tree.
//
// A highlight pass has four stages:
//
//   - Matcher: compiles the term set into one whole-word, case-insensitive
//     alternation and walks the visible text nodes in document order.
//   - Highlighter: Session.Apply rewrites each matched text node into a single
//     wrapper span holding plain text and <mark> elements, one per match.
//   - Navigator: Session.Next, Session.Previous and Session.Reselect move the
//     current-match cursor with wraparound and scroll the match into view.
//   - RestoreGuard: Session.Revert puts every wrapper back as plain text and
//     clears the session.
//
// Highlighting never edits characters: the text content of the document is
// identical before Apply, after Apply and after Revert.
//
// # Usage
//
//	terms, _ := core.NewTerms("cat", []string{"kitten"})
//	groups, err := highlight.FindMatches(body, terms)
//	if err != nil {
//	    return err
//	}
//	session := highlight.NewSession(body, terms)
//	count := session.Apply(groups)
//	session.Next()
//	session.Revert()
package highlight
