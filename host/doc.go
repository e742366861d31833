// Package host relays activation requests from the outside world to pages.
//
// A Host receives a toggle request for a tab, refuses tabs showing browser
// internal pages, and sends the toggle message over a Channel. When the page
// has no listener yet, the Host installs one through an Injector, waits a
// short delay and sends the message one more time.
//
// Registry is the in-process Channel: it maps tab ids to pages and their
// listeners. PageInjector installs listeners into registered pages using a
// caller supplied factory.
package host
