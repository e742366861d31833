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

// Package smartfind wires a term expansion provider, an optional expansion
// cache and the search components into one service.
package smartfind

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/smartfind/ai"
	"github.com/poiesic/smartfind/ai/datamuse"
	"github.com/poiesic/smartfind/ai/openai"
	"github.com/poiesic/smartfind/batch"
	"github.com/poiesic/smartfind/finder"
	"github.com/poiesic/smartfind/host"
	"github.com/poiesic/smartfind/storage"
	"github.com/poiesic/smartfind/storage/badger"
	"golang.org/x/net/html"
)

type Service struct {
	provider ai.Provider
	cache    storage.ExpansionCache
	expander ai.TermExpander
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	provider      ai.Provider
	cacheDir      string
	inMemoryCache bool
	cacheTTL      time.Duration
	logger        *slog.Logger
}

// WithAIConfig sets the configuration of the term expansion provider.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses p instead of building a provider from the AI config.
// The service takes ownership of p and closes it.
func WithProvider(p ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = p
	}
}

// WithCacheDir caches expansions in a database stored in dir.
func WithCacheDir(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheDir = dir
	}
}

// WithInMemoryCache caches expansions for the lifetime of the service.
func WithInMemoryCache() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemoryCache = true
	}
}

// WithCacheTTL expires cached expansions after ttl. Zero keeps them forever.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheTTL = ttl
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService creates a service. Without a cache option, every expansion
// goes to the provider.
func NewService(opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.aiConfig == nil && options.provider == nil {
		return nil, errors.New("ai config is required")
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = newProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	s := &Service{
		provider: provider,
		expander: provider.Expander(),
		logger:   options.logger.With("component", "smartfind"),
	}

	if options.cacheDir != "" || options.inMemoryCache {
		backend, err := badger.OpenBackend(options.cacheDir, options.cacheDir == "")
		if err != nil {
			provider.Close()
			return nil, err
		}
		cache, err := badger.NewExpansionCache(backend,
			badger.WithTTL(options.cacheTTL),
			badger.WithLogger(options.logger),
		)
		if err != nil {
			backend.Close()
			provider.Close()
			return nil, err
		}
		s.cache = cache
		s.expander = ai.NewCachedExpander(provider.Expander(), cache, provider.Name(), provider.Model())
	}

	s.logger.Debug("service ready", "provider", provider.Name(), "model", provider.Model(), "cached", s.cache != nil)
	return s, nil
}

func newProvider(cfg *ai.Config) (ai.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ai.ProviderDatamuse:
		return datamuse.NewProvider(cfg)
	case ai.ProviderOpenAI:
		return openai.NewProvider(cfg)
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Close releases the provider and the cache.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing provider", "err", err)
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing expansion cache", "err", err)
			return err
		}
	}
	return nil
}

// Provider returns the term expansion provider.
func (s *Service) Provider() ai.Provider {
	return s.provider
}

// Expander returns the term expander, cached when a cache is configured.
func (s *Service) Expander() ai.TermExpander {
	return s.expander
}

// Cache returns the expansion cache, or nil when caching is off.
func (s *Service) Cache() storage.ExpansionCache {
	return s.cache
}

// NewFinder creates a finder over doc using the service's expander.
func (s *Service) NewFinder(doc *html.Node, opts ...finder.Option) (*finder.Finder, error) {
	return finder.New(doc, s.expander, opts...)
}

// NewRunner creates a batch runner using the service's expander.
func (s *Service) NewRunner(opts ...batch.Option) (*batch.Runner, error) {
	return batch.NewRunner(s.expander, opts...)
}

// NewHost creates a host relaying toggles to the pages of registry. Pages
// without a listener get a new finder, configured with finderOpts.
func (s *Service) NewHost(registry *host.Registry, finderOpts []finder.Option, opts ...host.Option) (*host.Host, error) {
	injector, err := host.NewPageInjector(registry, func(doc *html.Node) (host.Listener, error) {
		f, err := s.NewFinder(doc, finderOpts...)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	opts = append([]host.Option{host.WithTabSource(registry)}, opts...)
	return host.New(registry, injector, opts...)
}
