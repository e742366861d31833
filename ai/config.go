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

package ai

import (
	"errors"
	"slices"
	"strings"
)

// Supported term expansion backends.
const (
	ProviderOpenAI   = "openai"
	ProviderDatamuse = "datamuse"
)

// Default service locations.
const (
	DefaultOpenAIHost   = "http://localhost:11434/v1"
	DefaultDatamuseHost = "https://api.datamuse.com"
)

// Providers lists the accepted values of Config.Provider.
var Providers = []string{ProviderOpenAI, ProviderDatamuse}

// Config holds configuration for term expansion providers.
type Config struct {
	// Provider selects the backend: "openai" for any OpenAI-compatible chat
	// API (Ollama, Groq, vLLM, ...) or "datamuse" for the word-finding API.
	Provider string

	// Host is the base URL of the service.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	Host string

	// Model is the chat model asked for related terms. Ignored by datamuse.
	// Example: "qwen2.5:3b", "meta-llama/llama-4-scout-17b-16e-instruct"
	Model string

	// APIKey is sent as a bearer token. Local servers usually need none.
	APIKey string

	// Temperature is the sampling temperature of the chat model.
	// Default: 0.4
	Temperature float64

	// MaxTerms caps the number of related terms returned per request.
	// Default: 15
	MaxTerms int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the expansion backend. A host still set to a
// provider default is reset so that Normalize picks the new provider's.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
		if c.Host == DefaultOpenAIHost || c.Host == DefaultDatamuseHost {
			c.Host = ""
		}
	}
}

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the bearer token sent to the service.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxTerms sets the maximum number of related terms per request.
func WithMaxTerms(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTerms = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		Host:        DefaultOpenAIHost,
		Model:       "qwen2.5:3b",
		Temperature: 0.4,
		MaxTerms:    15,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("https://api.groq.com/openai/v1"),
//	    WithModel("meta-llama/llama-4-scout-17b-16e-instruct"),
//	    WithAPIKey(os.Getenv("SMARTFIND_API_KEY")),
//	)
//
// Example with the datamuse backend:
//
//	cfg := NewConfig(WithProvider(ProviderDatamuse))
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// An empty Host is replaced by the provider's default. OpenAI-compatible hosts
// get the /v1 suffix most servers (Ollama, LocalAI, vLLM, etc) require.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	switch c.Provider {
	case ProviderOpenAI:
		if c.Host == "" {
			c.Host = DefaultOpenAIHost
		}
		if !strings.HasSuffix(c.Host, "/v1") {
			c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
		}
	case ProviderDatamuse:
		if c.Host == "" {
			c.Host = DefaultDatamuseHost
		}
		c.Host = strings.TrimSuffix(c.Host, "/")
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if !slices.Contains(Providers, c.Provider) {
		return errors.New("ai config: Provider must be one of " + strings.Join(Providers, ", "))
	}
	if c.Provider == ProviderOpenAI && c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTerms < 1 || c.MaxTerms > 100 {
		return errors.New("ai config: MaxTerms must be between 1 and 100")
	}
	return nil
}

// CacheModel returns the model component of cache keys: the model for chat
// backends, "" for backends without a model choice.
func (c *Config) CacheModel() string {
	if c.Provider == ProviderOpenAI {
		return c.Model
	}
	return ""
}
