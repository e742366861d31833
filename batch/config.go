package batch

import (
	"errors"
	"runtime"
	"time"
)

// Config holds configuration for a Runner.
type Config struct {
	// PoolSize is the number of documents highlighted concurrently.
	// Default: runtime.NumCPU() / 2, at least 1
	PoolSize int

	// MaxAttempts is the number of term expansion attempts.
	// Default: 3
	MaxAttempts int

	// RetryBaseDelay is the wait before the second attempt; it doubles after.
	// Default: 500ms
	RetryBaseDelay time.Duration
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		PoolSize:       max(runtime.NumCPU()/2, 1),
		MaxAttempts:    3,
		RetryBaseDelay: 500 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.PoolSize < 1 {
		return errors.New("batch config: PoolSize must be at least 1")
	}
	if c.MaxAttempts < 1 {
		return errors.New("batch config: MaxAttempts must be at least 1")
	}
	if c.RetryBaseDelay < 0 {
		return errors.New("batch config: RetryBaseDelay must not be negative")
	}
	return nil
}
