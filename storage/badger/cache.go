package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/storage"
)

// ExpansionCache implements storage.ExpansionCache for BadgerDB.
// Entries expire through badger's per-entry TTL.
type ExpansionCache struct {
	backend *Backend
	ttl     time.Duration
	logger  *slog.Logger
}

var _ storage.ExpansionCache = (*ExpansionCache)(nil)

// CacheOption configures an ExpansionCache.
type CacheOption func(*ExpansionCache)

// WithTTL sets how long entries stay valid. Zero keeps entries forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *ExpansionCache) {
		c.ttl = ttl
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *ExpansionCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// newExpansionCache is an internal constructor that returns the concrete type.
func newExpansionCache(backend *Backend, opts ...CacheOption) (*ExpansionCache, error) {
	if backend == nil {
		return nil, errors.New("badger: backend is required")
	}
	c := &ExpansionCache{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ttl < 0 {
		return nil, fmt.Errorf("badger: negative ttl %s", c.ttl)
	}
	c.logger = c.logger.With("component", "expansion-cache")
	return c, nil
}

// NewExpansionCache creates an expansion cache on top of backend. The cache
// owns the backend: closing the cache closes it.
//
// Returns storage.ExpansionCache interface to enforce abstraction.
func NewExpansionCache(backend *Backend, opts ...CacheOption) (storage.ExpansionCache, error) {
	c, err := newExpansionCache(backend, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetExpansion retrieves a cached expansion by key.
func (c *ExpansionCache) GetExpansion(ctx context.Context, key core.ID) (*core.Expansion, error) {
	var expansion *core.Expansion
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeExpansionKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			expansion, unmarshalErr = storage.UnmarshalExpansion(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return expansion, nil
}

// PutExpansion stores an expansion under its key.
func (c *ExpansionCache) PutExpansion(ctx context.Context, expansion *core.Expansion) error {
	if expansion == nil {
		return errors.New("badger: nil expansion")
	}
	value := storage.MarshalExpansion(expansion)

	return c.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeExpansionKey(expansion.Key), value)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		c.logger.Debug("cached expansion", "query", expansion.Query, "terms", len(expansion.Terms))
		return nil
	}, true)
}

// DeleteExpansion removes a cached expansion.
func (c *ExpansionCache) DeleteExpansion(ctx context.Context, key core.ID) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		k := makeExpansionKey(key)
		if _, err := tx.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(k); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListExpansions returns every live cached expansion, ordered by key.
func (c *ExpansionCache) ListExpansions(ctx context.Context) ([]*core.Expansion, error) {
	var expansions []*core.Expansion
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(expansionPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				expansion, err := storage.UnmarshalExpansion(val)
				if err != nil {
					return err
				}
				expansions = append(expansions, expansion)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return expansions, nil
}

// PurgeExpansions removes every cached expansion.
func (c *ExpansionCache) PurgeExpansions(ctx context.Context) (int, error) {
	var keys [][]byte
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(expansionPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := c.backend.DeleteKeys(keys); err != nil {
		return 0, err
	}
	c.logger.Info("purged expansion cache", "entries", len(keys))
	return len(keys), nil
}

// Close closes the underlying backend.
func (c *ExpansionCache) Close() error {
	if c.backend.IsClosed() {
		return nil
	}
	return c.backend.Close()
}
