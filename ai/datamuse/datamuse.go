// Package datamuse provides term expansion through the Datamuse word-finding
// API ("means like" queries). It needs no API key.
package datamuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/smartfind/ai"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is kept for the message.
const maxErrorBody = 512

// word is one entry of a /words response.
type word struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Expander implements ai.TermExpander on top of GET /words?ml=WORD&max=N.
type Expander struct {
	url      string
	maxTerms int
	do       func(*http.Request) (*http.Response, error)
	logger   *slog.Logger
}

func newExpander(config *ai.Config, hc *http.Client) (*Expander, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Provider != ai.ProviderDatamuse {
		return nil, fmt.Errorf("datamuse: unsupported provider %q", config.Provider)
	}
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Expander{
		url:      config.Host + "/words",
		maxTerms: config.MaxTerms,
		do:       hc.Do,
		logger:   slog.Default().With("component", "datamuse-expander"),
	}, nil
}

// NewExpander creates a datamuse term expander.
//
// Returns ai.TermExpander interface to enforce abstraction.
func NewExpander(config *ai.Config) (ai.TermExpander, error) {
	e, err := newExpander(config, nil)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ExpandTerms returns words meaning like word, best first. Echoes of word
// itself are dropped.
func (e *Expander) ExpandTerms(ctx context.Context, w string) ([]string, error) {
	w = strings.TrimSpace(w)
	if w == "" {
		return []string{}, nil
	}

	q := url.Values{}
	q.Set("ml", w)
	q.Set("max", strconv.Itoa(e.maxTerms))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ai.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		e.logger.Error("datamuse request failed", "status", resp.StatusCode, "word", w)
		return nil, fmt.Errorf("%w: status %d: %s", ai.ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var words []word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ai.ErrRequestFailed, err)
	}

	terms := make([]string, 0, len(words))
	for _, entry := range words {
		if t := strings.TrimSpace(entry.Word); t != "" {
			terms = append(terms, t)
		}
	}
	terms = ai.LimitTerms(ai.DropEcho(terms, w), e.maxTerms)
	e.logger.Debug("expanded terms", "word", w, "terms", len(terms))
	return terms, nil
}

// Provider implements ai.Provider for Datamuse.
type Provider struct {
	expander *Expander
}

// NewProvider creates a datamuse provider.
//
// Returns ai.Provider interface for consistency with other backends.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	e, err := newExpander(config, nil)
	if err != nil {
		return nil, err
	}
	return &Provider{expander: e}, nil
}

// Expander returns the term expansion service.
func (p *Provider) Expander() ai.TermExpander {
	return p.expander
}

// Name returns ai.ProviderDatamuse.
func (p *Provider) Name() string {
	return ai.ProviderDatamuse
}

// Model returns "": Datamuse has no model choice.
func (p *Provider) Model() string {
	return ""
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
