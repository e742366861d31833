package host

import (
	"errors"
	"strings"
	"time"
)

// DefaultRetryDelay is the wait between injection and the second toggle.
const DefaultRetryDelay = 100 * time.Millisecond

// maxRetryDelay bounds Config.RetryDelay.
const maxRetryDelay = 10 * time.Second

// RestrictedPrefixes lists URL prefixes of pages that cannot be scripted.
var RestrictedPrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"edge://",
	"about:",
	"chrome-search://",
}

// Config holds configuration for a Host.
type Config struct {
	// RetryDelay is how long to wait after injection before resending the
	// toggle message.
	// Default: 100ms
	RetryDelay time.Duration

	// Restricted lists URL prefixes refused by the host.
	// Default: RestrictedPrefixes
	Restricted []string
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	restricted := make([]string, len(RestrictedPrefixes))
	copy(restricted, RestrictedPrefixes)
	return &Config{
		RetryDelay: DefaultRetryDelay,
		Restricted: restricted,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.RetryDelay < 0 || c.RetryDelay > maxRetryDelay {
		return errors.New("host config: RetryDelay must be between 0 and 10s")
	}
	for _, p := range c.Restricted {
		if strings.TrimSpace(p) == "" {
			return errors.New("host config: Restricted prefixes must not be empty")
		}
	}
	return nil
}

// IsRestricted reports whether url is empty or starts with one of the
// restricted prefixes.
func (c *Config) IsRestricted(url string) bool {
	if url == "" {
		return true
	}
	for _, p := range c.Restricted {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}
