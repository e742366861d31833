package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/smartfind/ai"
	"github.com/poiesic/smartfind/core"
	"github.com/poiesic/smartfind/dom"
	"github.com/poiesic/smartfind/highlight"
	"golang.org/x/net/html"
)

// Document is one page of a batch.
type Document struct {
	Name string
	Root *html.Node
}

// Outcome is the result of highlighting one document.
type Outcome struct {
	Name  string
	Count int
	Err   error
}

// Report describes a finished batch.
type Report struct {
	Terms        core.Terms
	ExpansionErr error
	Outcomes     []Outcome
	Elapsed      time.Duration
}

// Total returns the number of matches over every document.
func (r Report) Total() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.Count
	}
	return total
}

// Failed returns the outcomes that carry an error.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Runner highlights batches of documents.
type Runner struct {
	expander ai.TermExpander
	config   *Config
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(r *Runner) error {
		if cfg == nil {
			return errors.New("config cannot be nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg
		return nil
	}
}

// WithProgress reports progress to w while a batch runs.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) error {
		r.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a Runner expanding queries with expander.
// Call Release when done.
func NewRunner(expander ai.TermExpander, opts ...Option) (*Runner, error) {
	if expander == nil {
		return nil, ErrExpanderRequired
	}

	r := &Runner{
		expander: expander,
		config:   DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "batch")

	pool, err := ants.NewPool(r.config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	r.pool = pool
	return r, nil
}

// Release stops the worker pool. The runner must not be used afterwards.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Expand builds the term set for query, retrying the expander with backoff.
// When every attempt fails, the term set holds the query alone and the last
// error is returned alongside it.
func (r *Runner) Expand(ctx context.Context, query string) (core.Terms, error) {
	if err := core.ValidateQuery(query); err != nil {
		return core.Terms{}, err
	}

	var related []string
	expandErr := RetryWithBackoff(ctx, func() error {
		var err error
		related, err = r.expander.ExpandTerms(ctx, query)
		return err
	}, r.config.MaxAttempts, r.config.RetryBaseDelay)

	if expandErr != nil {
		if ctx.Err() != nil {
			return core.Terms{}, ctx.Err()
		}
		r.logger.Warn("term expansion failed, using query alone",
			"query", query, "attempts", r.config.MaxAttempts, "error", expandErr)
		related = nil
	}

	terms, err := core.NewTerms(query, related)
	if err != nil {
		return core.Terms{}, err
	}
	return terms, expandErr
}

// Run expands query once and highlights every document with the result.
// Documents are modified in place. Per-document failures are reported in
// the outcomes; Run itself fails only on an invalid query or a done context.
func (r *Runner) Run(ctx context.Context, query string, docs []Document) (Report, error) {
	start := time.Now()

	terms, expandErr := r.Expand(ctx, query)
	if terms.IsZero() {
		return Report{}, expandErr
	}

	report, err := r.Highlight(ctx, terms, docs)
	report.ExpansionErr = expandErr
	report.Elapsed = time.Since(start)
	return report, err
}

// Highlight highlights every document with terms on the worker pool.
func (r *Runner) Highlight(ctx context.Context, terms core.Terms, docs []Document) (Report, error) {
	start := time.Now()
	report := Report{
		Terms:    terms,
		Outcomes: make([]Outcome, len(docs)),
	}

	var tracker *ProgressTracker
	if r.progress != nil {
		tracker = NewProgressTracker(r.progress, len(docs), max(len(docs)/20, 1))
		tracker.Start()
	}

	var wg sync.WaitGroup
	for i, doc := range docs {
		report.Outcomes[i].Name = doc.Name
		if err := ctx.Err(); err != nil {
			report.Outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			count, err := r.highlightOne(ctx, terms, doc)
			report.Outcomes[i].Count = count
			report.Outcomes[i].Err = err
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			report.Outcomes[i].Err = fmt.Errorf("failed to submit document: %w", err)
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}
	report.Elapsed = time.Since(start)

	r.logger.Info("batch complete",
		"documents", len(docs),
		"matches", report.Total(),
		"failed", len(report.Failed()),
		"elapsed", report.Elapsed)

	return report, ctx.Err()
}

func (r *Runner) highlightOne(ctx context.Context, terms core.Terms, doc Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if doc.Root == nil {
		return 0, ErrDocumentRequired
	}

	body := dom.Body(doc.Root)
	groups, err := highlight.FindMatches(body, terms)
	if err != nil {
		return 0, fmt.Errorf("failed to match %s: %w", doc.Name, err)
	}

	session := highlight.NewSession(body, terms)
	count := session.Apply(groups)
	r.logger.Debug("document highlighted", "name", doc.Name, "matches", count)
	return count, nil
}
