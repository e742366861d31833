package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const page = `<html><body><h1>Pets</h1><p>The cat sat near a kitten.</p><p>A dog and a cat.</p></body></html>`

// datamuseServer answers every /words request with related.
func datamuseServer(t *testing.T, related ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/words" {
			http.NotFound(w, r)
			return
		}
		words := []map[string]any{{"word": r.URL.Query().Get("ml"), "score": 100}}
		for i, rel := range related {
			words = append(words, map[string]any{"word": rel, "score": 90 - i})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(words)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"smartfind"}, args...))
	return out.String(), err
}

func findFlag[T cli.Flag](flags []cli.Flag, name string) T {
	var zero T
	for _, f := range flags {
		if typed, ok := f.(T); ok && f.Names()[0] == name {
			return typed
		}
	}
	return zero
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	provider := findFlag[*cli.StringFlag](app.Flags, "provider")
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Value)
	assert.Equal(t, []string{"SMARTFIND_PROVIDER"}, provider.EnvVars)

	apiKey := findFlag[*cli.StringFlag](app.Flags, "api-key")
	require.NotNil(t, apiKey)
	assert.Empty(t, apiKey.Value)
	assert.Equal(t, []string{"SMARTFIND_API_KEY"}, apiKey.EnvVars)

	hostFlag := findFlag[*cli.StringFlag](app.Flags, "host")
	require.NotNil(t, hostFlag)
	assert.Equal(t, []string{"SMARTFIND_HOST"}, hostFlag.EnvVars)

	temperature := findFlag[*cli.Float64Flag](app.Flags, "temperature")
	require.NotNil(t, temperature)
	assert.Equal(t, 0.4, temperature.Value)
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	_, err := runApp(t, "", "--log-level", "loud", "expand", "cat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestExpandCommand(t *testing.T) {
	srv, calls := datamuseServer(t, "kitten", "feline")

	out, err := runApp(t, "", "--provider", "datamuse", "--host", srv.URL, "expand", "cat")
	require.NoError(t, err)
	assert.Equal(t, "kitten\nfeline\n", out)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExpandCommand_RequiresWord(t *testing.T) {
	_, err := runApp(t, "", "--provider", "datamuse", "expand")
	assert.Error(t, err)
}

func TestExpandCommand_InvalidProvider(t *testing.T) {
	_, err := runApp(t, "", "--provider", "carrier-pigeon", "expand", "cat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AI configuration")
}

func TestExpandCommand_Cached(t *testing.T) {
	srv, calls := datamuseServer(t, "kitten")
	cacheDir := filepath.Join(t.TempDir(), "cache")
	args := []string{"--provider", "datamuse", "--host", srv.URL, "--cache-dir", cacheDir}

	for range 2 {
		out, err := runApp(t, "", append(args, "expand", "cat")...)
		require.NoError(t, err)
		assert.Equal(t, "kitten\n", out)
	}
	assert.Equal(t, int32(1), calls.Load())

	out, err := runApp(t, "", append(args, "cache", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "datamuse")
	assert.Contains(t, out, "cat")
	assert.Contains(t, out, "kitten")

	out, err = runApp(t, "", append(args, "cache", "clear")...)
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 cached expansions\n", out)

	out, err = runApp(t, "", append(args, "cache", "list")...)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCacheCommands_RequireCacheDir(t *testing.T) {
	_, err := runApp(t, "", "--provider", "datamuse", "cache", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-dir")
}

func TestHighlightCommand(t *testing.T) {
	srv, _ := datamuseServer(t, "kitten", "dog")
	dir := t.TempDir()
	in := filepath.Join(dir, "pets.html")
	require.NoError(t, os.WriteFile(in, []byte(page), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := runApp(t, "", "--provider", "datamuse", "--host", srv.URL,
		"highlight", "--query", "cat", "--out", outDir, in)
	require.NoError(t, err)
	assert.Contains(t, out, "Terms: cat, kitten, dog")
	assert.Contains(t, out, "pets.html: 4 matches")
	assert.Contains(t, out, "Total: 4 matches in 1 files")

	data, err := os.ReadFile(filepath.Join(outDir, "pets.html"))
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "<mark "))
}

func TestHighlightCommand_Validation(t *testing.T) {
	_, err := runApp(t, "", "highlight", "--query", "cat", "--out", t.TempDir())
	assert.Error(t, err)

	_, err = runApp(t, "", "highlight", "--out", t.TempDir(), "a.html")
	assert.Error(t, err)

	_, err = runApp(t, "", "highlight", "--query", "cat", "--out", t.TempDir(), "--pool-size", "0", "a.html")
	assert.Error(t, err)
}

func TestBrowseCommand(t *testing.T) {
	srv, _ := datamuseServer(t, "kitten")
	dir := t.TempDir()
	in := filepath.Join(dir, "pets.html")
	require.NoError(t, os.WriteFile(in, []byte(page), 0o644))
	saved := filepath.Join(dir, "saved.html")

	script := strings.Join([]string{
		"search cat",
		"/toggle",
		"search",
		"search cat",
		"n",
		"p",
		"save " + saved,
		"close",
		"bogus",
		"quit",
	}, "\n")

	out, err := runApp(t, script, "--provider", "datamuse", "--host", srv.URL, "browse", in)
	require.NoError(t, err)

	assert.Contains(t, out, "search is not active")
	assert.Contains(t, out, "Press Enter or click Search to find similar words")
	assert.Contains(t, out, "Please enter a search term")
	assert.Contains(t, out, "Found 3 matches | Searching: cat, kitten | Match 1/3")
	assert.Contains(t, out, "Found 3 matches | Searching: cat, kitten | Match 2/3")
	assert.Contains(t, out, "Search closed")
	assert.Contains(t, out, `unknown command "bogus"`)

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "<mark "))
	assert.Contains(t, string(data), `id="smart-search-bar"`)
}

func TestBrowseCommand_RequiresFile(t *testing.T) {
	_, err := runApp(t, "", "browse")
	assert.Error(t, err)
}
