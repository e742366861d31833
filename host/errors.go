package host

import "errors"

var (
	// ErrNoListener indicates the tab has no listener for toggle messages.
	ErrNoListener = errors.New("no listener in page")

	// ErrRestrictedURL indicates the tab shows a page that cannot be scripted.
	ErrRestrictedURL = errors.New("cannot activate search on this page")

	// ErrTabNotFound indicates the tab id is not registered.
	ErrTabNotFound = errors.New("tab not found")

	// ErrNoActiveTab indicates no tab is active.
	ErrNoActiveTab = errors.New("no active tab found")

	// ErrUnknownCommand indicates a command the host does not handle.
	ErrUnknownCommand = errors.New("unknown command")
)
