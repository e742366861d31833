package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/storage"
)

// CachedExpander answers from an expansion cache and asks the wrapped
// expander only on a miss. Failed requests are never cached.
type CachedExpander struct {
	inner    TermExpander
	cache    storage.ExpansionCache
	provider string
	model    string
	now      func() time.Time
	logger   *slog.Logger
}

var _ TermExpander = (*CachedExpander)(nil)

// NewCachedExpander wraps inner with cache. provider and model become part of
// the cache key so that answers of different backends never mix.
func NewCachedExpander(inner TermExpander, cache storage.ExpansionCache, provider, model string) *CachedExpander {
	return &CachedExpander{
		inner:    inner,
		cache:    cache,
		provider: provider,
		model:    model,
		now:      time.Now,
		logger:   slog.Default().With("component", "cached-expander", "provider", provider),
	}
}

// ExpandTerms returns the cached answer for word if there is one.
func (c *CachedExpander) ExpandTerms(ctx context.Context, word string) ([]string, error) {
	key := core.CacheKey(c.provider, c.model, word)

	cached, err := c.cache.GetExpansion(ctx, key)
	switch {
	case err == nil:
		c.logger.Debug("expansion cache hit", "word", word, "terms", len(cached.Terms))
		out := make([]string, len(cached.Terms))
		copy(out, cached.Terms)
		return out, nil
	case !errors.Is(err, storage.ErrNotFound):
		c.logger.Warn("expansion cache read failed", "word", word, "err", err)
	}

	terms, err := c.inner.ExpandTerms(ctx, word)
	if err != nil {
		return nil, err
	}

	expansion := core.NewExpansion(c.provider, c.model, word, terms, c.now().UTC())
	if err := c.cache.PutExpansion(ctx, expansion); err != nil {
		c.logger.Warn("expansion cache write failed", "word", word, "err", err)
	}
	return terms, nil
}
