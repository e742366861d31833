package ai_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/smartfind/ai"
	"github.com/poiesic/smartfind/ai/mock"
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/storage"
	"github.com/poiesic/smartfind/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) storage.ExpansionCache {
	t.Helper()
	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCachedExpander_MissThenHit(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockExpander().WithAnswer("cat", "kitten", "feline")
	cache := newCache(t)
	e := ai.NewCachedExpander(inner, cache, "openai", "m")

	first, err := e.ExpandTerms(ctx, "cat")
	require.NoError(t, err)
	second, err := e.ExpandTerms(ctx, "CAT ")
	require.NoError(t, err)

	assert.Equal(t, []string{"kitten", "feline"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.CallCount())

	stored, err := cache.GetExpansion(ctx, core.CacheKey("openai", "m", "cat"))
	require.NoError(t, err)
	assert.Equal(t, "cat", stored.Query)
	assert.WithinDuration(t, time.Now(), stored.FetchedAt, time.Minute)
}

func TestCachedExpander_EmptyAnswerIsCached(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockExpander().WithAnswer("zzyzx")
	e := ai.NewCachedExpander(inner, newCache(t), "openai", "m")

	for range 2 {
		terms, err := e.ExpandTerms(ctx, "zzyzx")
		require.NoError(t, err)
		assert.Empty(t, terms)
	}
	assert.Equal(t, 1, inner.CallCount())
}

func TestCachedExpander_FailuresNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("service down")
	inner := mock.NewMockExpander().WithExpandTermsFunc(func(context.Context, string) ([]string, error) {
		return nil, boom
	})
	cache := newCache(t)
	e := ai.NewCachedExpander(inner, cache, "openai", "m")

	_, err := e.ExpandTerms(ctx, "cat")
	assert.ErrorIs(t, err, boom)

	_, err = cache.GetExpansion(ctx, core.CacheKey("openai", "m", "cat"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	inner.Reset()
	inner.WithAnswer("cat", "kitten")
	terms, err := e.ExpandTerms(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"kitten"}, terms)
}

func TestCachedExpander_ClosedCacheFallsThrough(t *testing.T) {
	inner := mock.NewMockExpander().WithAnswer("cat", "kitten")
	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	e := ai.NewCachedExpander(inner, cache, "openai", "m")
	terms, err := e.ExpandTerms(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"kitten"}, terms)
}

func TestCachedExpander_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockExpander().WithAnswer("cat", "kitten")
	e := ai.NewCachedExpander(inner, newCache(t), "openai", "m")

	_, err := e.ExpandTerms(ctx, "cat")
	require.NoError(t, err)
	hit, err := e.ExpandTerms(ctx, "cat")
	require.NoError(t, err)
	hit[0] = "mutated"

	again, err := e.ExpandTerms(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"kitten"}, again)
}
