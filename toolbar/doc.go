// Package toolbar builds and updates the inline search toolbar injected into
// a page: the search input, the search, previous, next and close buttons, the
// status line and the pending indicator.
//
// The toolbar is an ordinary subtree of the page (id "smart-search-bar") and
// is excluded from matching. Status lines follow fixed formats:
//
//	Found 7 matches | Searching: cat, kitten, feline, tabby, tomcat +2 more | Match 1/7
package toolbar
