package badger

import "github.com/poiesic/smartfind/storage"

// NewMemoryCache creates an in-memory expansion cache for testing.
// Caller must close the cache when done.
func NewMemoryCache(opts ...CacheOption) (storage.ExpansionCache, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	cache, err := NewExpansionCache(backend, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return cache, nil
}
