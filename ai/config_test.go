package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.InDelta(t, 0.4, cfg.Temperature, 1e-9)
	assert.Equal(t, 15, cfg.MaxTerms)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with custom host and model", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("https://api.groq.com/openai/v1"),
			WithModel("meta-llama/llama-4-scout-17b-16e-instruct"),
			WithAPIKey("secret"),
		)

		assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Host)
		assert.Equal(t, "meta-llama/llama-4-scout-17b-16e-instruct", cfg.Model)
		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("datamuse provider resets default host", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderDatamuse))
		require.NoError(t, cfg.Validate())

		assert.Equal(t, DefaultDatamuseHost, cfg.Host)
	})

	t.Run("provider keeps custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://words.internal/"), WithProvider(ProviderDatamuse))
		require.NoError(t, cfg.Validate())

		assert.Equal(t, "http://words.internal", cfg.Host)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithTemperature(0.9),
			WithMaxTerms(5),
		)

		assert.InDelta(t, 0.9, cfg.Temperature, 1e-9)
		assert.Equal(t, 5, cfg.MaxTerms)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		host         string
		expectedHost string
	}{
		{
			name:         "already has /v1",
			provider:     ProviderOpenAI,
			host:         "http://localhost:11434/v1",
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "missing /v1",
			provider:     ProviderOpenAI,
			host:         "http://localhost:11434",
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "has trailing slash",
			provider:     ProviderOpenAI,
			host:         "http://localhost:11434/",
			expectedHost: "http://localhost:11434/v1",
		},
		{
			name:         "empty openai host",
			provider:     ProviderOpenAI,
			host:         "",
			expectedHost: DefaultOpenAIHost,
		},
		{
			name:         "datamuse never gets /v1",
			provider:     ProviderDatamuse,
			host:         "https://api.datamuse.com/",
			expectedHost: "https://api.datamuse.com",
		},
		{
			name:         "empty datamuse host",
			provider:     ProviderDatamuse,
			host:         "",
			expectedHost: DefaultDatamuseHost,
		},
		{
			name:         "unknown provider untouched",
			provider:     "carrier-pigeon",
			host:         "coop://roof",
			expectedHost: "coop://roof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, Host: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expectedHost, cfg.Host)
		})
	}
}

func TestConfigNormalize_Provider(t *testing.T) {
	cfg := &Config{Provider: "  OpenAI "}
	cfg.Normalize()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider:    ProviderOpenAI,
			Host:        "http://localhost:11434",
			Model:       "qwen2.5:3b",
			Temperature: 0.4,
			MaxTerms:    15,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "bing" }, "Provider"},
		{"missing model", func(c *Config) { c.Model = "" }, "Model"},
		{"temperature too low", func(c *Config) { c.Temperature = -0.1 }, "Temperature"},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, "Temperature"},
		{"max terms too low", func(c *Config) { c.MaxTerms = 0 }, "MaxTerms"},
		{"max terms too high", func(c *Config) { c.MaxTerms = 101 }, "MaxTerms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("datamuse needs no model", func(t *testing.T) {
		cfg := valid()
		cfg.Provider = ProviderDatamuse
		cfg.Model = ""
		cfg.Host = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 0
		cfg.MaxTerms = 1
		assert.NoError(t, cfg.Validate())

		cfg.Temperature = 2
		cfg.MaxTerms = 100
		assert.NoError(t, cfg.Validate())
	})
}

func TestCacheModel(t *testing.T) {
	assert.Equal(t, "qwen2.5:3b", DefaultConfig().CacheModel())
	assert.Empty(t, NewConfig(WithProvider(ProviderDatamuse)).CacheModel())
}

func TestConfigValidate_Integration(t *testing.T) {
	// Test that NewConfig produces a valid configuration
	cfg := NewConfig()
	err := cfg.Validate()
	require.NoError(t, err)

	// Test that DefaultConfig produces a valid configuration
	cfg = DefaultConfig()
	err = cfg.Validate()
	require.NoError(t, err)
}
