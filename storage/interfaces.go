package storage

import (
	"context"

	"github.com/poiesic/smartfind/core"
)

// ExpansionCache stores answers of term expansion backends, keyed by
// core.CacheKey.
type ExpansionCache interface {
	// GetExpansion retrieves a cached expansion by key.
	// Returns ErrNotFound if the key is absent or its entry has expired.
	GetExpansion(ctx context.Context, key core.ID) (*core.Expansion, error)

	// PutExpansion stores an expansion under its Key, replacing any previous
	// entry. Entries may expire after a backend-defined time to live.
	PutExpansion(ctx context.Context, expansion *core.Expansion) error

	// DeleteExpansion removes a cached expansion.
	// Returns ErrNotFound if the key is absent.
	DeleteExpansion(ctx context.Context, key core.ID) error

	// ListExpansions returns every live cached expansion, ordered by key.
	ListExpansions(ctx context.Context) ([]*core.Expansion, error)

	// PurgeExpansions removes every cached expansion and returns how many
	// entries were removed.
	PurgeExpansions(ctx context.Context) (int, error)

	// Close closes the cache and releases resources.
	Close() error
}
