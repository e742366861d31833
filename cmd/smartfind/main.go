// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/smartfind"
	"github.com/poiesic/smartfind/ai"
	"github.com/poiesic/smartfind/batch"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "smartfind",
		Usage: "Find a word and its related terms in HTML pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "Term expansion backend (" + strings.Join(ai.Providers, ", ") + ")",
				Value:   ai.ProviderOpenAI,
				EnvVars: []string{"SMARTFIND_PROVIDER"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "Term expansion service URL (defaults to the provider's)",
				EnvVars: []string{"SMARTFIND_HOST"},
			},
			&cli.StringFlag{
				Name:    "model",
				Usage:   "Chat model asked for related terms",
				Value:   ai.DefaultConfig().Model,
				EnvVars: []string{"SMARTFIND_MODEL"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key of the term expansion service",
				EnvVars: []string{"SMARTFIND_API_KEY"},
			},
			&cli.Float64Flag{
				Name:  "temperature",
				Usage: "Sampling temperature of the chat model",
				Value: ai.DefaultConfig().Temperature,
			},
			&cli.IntFlag{
				Name:  "max-terms",
				Usage: "Maximum number of related terms per query",
				Value: ai.DefaultConfig().MaxTerms,
			},
			&cli.StringFlag{
				Name:    "cache-dir",
				Usage:   "Directory of the expansion cache (no caching when empty)",
				EnvVars: []string{"SMARTFIND_CACHE_DIR"},
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "Lifetime of cached expansions (0 keeps them forever)",
				Value: 7 * 24 * time.Hour,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "expand",
				Usage:     "Print the terms related to a word",
				ArgsUsage: "WORD",
				Action:    expandCommand,
			},
			{
				Name:      "highlight",
				Usage:     "Highlight a word and its related terms in HTML files",
				ArgsUsage: "FILE...",
				Action:    highlightCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Word to search for",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Directory receiving the highlighted files",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of files highlighted concurrently",
						Value: batch.DefaultConfig().PoolSize,
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Maximum term expansion attempts",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
				},
			},
			{
				Name:      "browse",
				Usage:     "Search an HTML file interactively",
				ArgsUsage: "FILE",
				Action:    browseCommand,
			},
			{
				Name:  "cache",
				Usage: "Inspect the expansion cache",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List cached expansions",
						Action: cacheListCommand,
					},
					{
						Name:   "clear",
						Usage:  "Remove every cached expansion",
						Action: cacheClearCommand,
					},
				},
			},
		},
	}
}

// aiConfig builds the term expansion configuration from the global flags.
func aiConfig(c *cli.Context) (*ai.Config, error) {
	cfg := ai.NewConfig(
		ai.WithProvider(c.String("provider")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithTemperature(c.Float64("temperature")),
		ai.WithMaxTerms(c.Int("max-terms")),
	)
	if host := c.String("host"); host != "" {
		cfg.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return cfg, nil
}

func openService(c *cli.Context, requireCache bool) (*smartfind.Service, error) {
	cfg, err := aiConfig(c)
	if err != nil {
		return nil, err
	}

	opts := []smartfind.ServiceOption{smartfind.WithAIConfig(cfg)}
	if dir := c.String("cache-dir"); dir != "" {
		opts = append(opts, smartfind.WithCacheDir(dir), smartfind.WithCacheTTL(c.Duration("cache-ttl")))
	} else if requireCache {
		return nil, errors.New("cache-dir is required")
	}

	svc, err := smartfind.NewService(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return svc, nil
}

func expandCommand(c *cli.Context) error {
	word := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if word == "" {
		return errors.New("a word is required")
	}

	svc, err := openService(c, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	terms, err := svc.Expander().ExpandTerms(c.Context, word)
	if err != nil {
		return fmt.Errorf("term expansion failed: %w", err)
	}
	for _, t := range terms {
		fmt.Fprintln(c.App.Writer, t)
	}
	return nil
}

func highlightCommand(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return errors.New("at least one file is required")
	}

	config := &batch.Config{
		PoolSize:       c.Int("pool-size"),
		MaxAttempts:    c.Int("max-attempts"),
		RetryBaseDelay: c.Duration("retry-delay"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	docs, err := batch.ReadDocuments(files)
	if err != nil {
		return err
	}

	svc, err := openService(c, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	runner, err := svc.NewRunner(batch.WithConfig(config), batch.WithProgress(c.App.ErrWriter))
	if err != nil {
		return err
	}
	defer runner.Release()

	report, err := runner.Run(c.Context, c.String("query"), docs)
	if err != nil {
		return fmt.Errorf("highlighting failed: %w", err)
	}
	if report.ExpansionErr != nil {
		fmt.Fprintf(c.App.ErrWriter, "Term expansion failed, searched for %q only: %v\n", report.Terms.Query(), report.ExpansionErr)
	}

	if err := batch.WriteDocuments(c.String("out"), docs); err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Terms: %s\n", strings.Join(report.Terms.All(), ", "))
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", o.Name, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %d matches\n", o.Name, o.Count)
	}
	fmt.Fprintf(w, "Total: %d matches in %d files (%s)\n", report.Total(), len(report.Outcomes), report.Elapsed.Round(time.Millisecond))
	return nil
}

func cacheListCommand(c *cli.Context) error {
	svc, err := openService(c, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	expansions, err := svc.Cache().ListExpansions(c.Context)
	if err != nil {
		return err
	}
	for _, e := range expansions {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%s\t%s\n",
			e.Provider, e.Model, e.Query, strings.Join(e.Terms, ", "), e.FetchedAt.Format(time.RFC3339))
	}
	return nil
}

func cacheClearCommand(c *cli.Context) error {
	svc, err := openService(c, true)
	if err != nil {
		return err
	}
	defer svc.Close()

	n, err := svc.Cache().PurgeExpansions(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Removed %d cached expansions\n", n)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

