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

package openai

import (
	"log/slog"

	"github.com/poiesic/smartfind/ai"
)

// Provider implements ai.Provider using an OpenAI-compatible chat service.
type Provider struct {
	config   *ai.Config
	expander *Expander
	logger   *slog.Logger
}

// NewProvider creates a new term expansion provider backed by an
// OpenAI-compatible chat service. The config is validated and normalized
// before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	expander, err := newExpander(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		expander: expander,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Expander returns the term expansion service.
func (p *Provider) Expander() ai.TermExpander {
	return p.expander
}

// Name returns ai.ProviderOpenAI.
func (p *Provider) Name() string {
	return ai.ProviderOpenAI
}

// Model returns the chat model answering requests.
func (p *Provider) Model() string {
	return p.config.Model
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
