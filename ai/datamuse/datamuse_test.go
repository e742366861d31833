package datamuse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poiesic/smartfind/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExpander(t *testing.T, handler http.HandlerFunc, opts ...ai.ConfigOption) *Expander {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]ai.ConfigOption{ai.WithProvider(ai.ProviderDatamuse), ai.WithHost(srv.URL)}, opts...)
	e, err := newExpander(ai.NewConfig(opts...), srv.Client())
	require.NoError(t, err)
	return e
}

func TestExpandTerms(t *testing.T) {
	var gotQuery string
	e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[{"word":"feline","score":900},{"word":"Cat","score":880},{"word":"kitten","score":850},{"word":" ","score":1}]`)
	})

	terms, err := e.ExpandTerms(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"feline", "kitten"}, terms)
	assert.Equal(t, "max=15&ml=cat", gotQuery)
}

func TestExpandTerms_Phrase(t *testing.T) {
	var ml string
	e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {
		ml = r.URL.Query().Get("ml")
		fmt.Fprint(w, `[]`)
	}, ai.WithMaxTerms(5))

	terms, err := e.ExpandTerms(context.Background(), "ice cream")
	require.NoError(t, err)
	assert.Empty(t, terms)
	assert.Equal(t, "ice cream", ml)
}

func TestExpandTerms_MaxTerms(t *testing.T) {
	e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("max"))
		fmt.Fprint(w, `[{"word":"a1"},{"word":"b2"},{"word":"c3"}]`)
	}, ai.WithMaxTerms(2))

	terms, err := e.ExpandTerms(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2"}, terms)
}

func TestExpandTerms_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		})
		_, err := e.ExpandTerms(context.Background(), "cat")
		assert.ErrorIs(t, err, ai.ErrRequestFailed)
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "slow down")
	})

	t.Run("malformed body", func(t *testing.T) {
		e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"word":`)
		})
		_, err := e.ExpandTerms(context.Background(), "cat")
		assert.ErrorIs(t, err, ai.ErrRequestFailed)
	})

	t.Run("transport", func(t *testing.T) {
		e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {})
		e.do = func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}
		_, err := e.ExpandTerms(context.Background(), "cat")
		assert.ErrorIs(t, err, ai.ErrRequestFailed)
	})

	t.Run("cancelled", func(t *testing.T) {
		e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {})
		e.do = func(r *http.Request) (*http.Response, error) {
			return nil, r.Context().Err()
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.ExpandTerms(ctx, "cat")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExpandTerms_EmptyWord(t *testing.T) {
	called := false
	e := newTestExpander(t, func(w http.ResponseWriter, r *http.Request) {})
	e.do = func(*http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader("[]"))}, nil
	}

	terms, err := e.ExpandTerms(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, terms)
	assert.False(t, called)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ai.NewConfig(ai.WithProvider(ai.ProviderDatamuse)))
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, ai.ProviderDatamuse, p.Name())
	assert.Empty(t, p.Model())
	e := p.Expander().(*Expander)
	assert.Equal(t, ai.DefaultDatamuseHost+"/words", e.url)

	_, err = NewExpander(ai.DefaultConfig())
	assert.Error(t, err)
}
