package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/smartfind/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Expander implements ai.TermExpander using an OpenAI-compatible chat API.
type Expander struct {
	client      llms.Model
	temperature float64
	maxTerms    int
	logger      *slog.Logger
}

// newExpander is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newExpander(config *ai.Config) (*Expander, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Provider != ai.ProviderOpenAI {
		return nil, fmt.Errorf("openai: unsupported provider %q", config.Provider)
	}

	// Local OpenAI-compatible services accept any token
	token := config.APIKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newExpanderWithModel(client, config), nil
}

func newExpanderWithModel(client llms.Model, config *ai.Config) *Expander {
	return &Expander{
		client:      client,
		temperature: config.Temperature,
		maxTerms:    config.MaxTerms,
		logger:      slog.Default().With("component", "openai-expander"),
	}
}

// NewExpander creates a new term expander using the provided configuration.
//
// Returns ai.TermExpander interface to enforce abstraction.
func NewExpander(config *ai.Config) (ai.TermExpander, error) {
	e, err := newExpander(config)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ExpandTerms asks the chat model for short phrases similar to word.
func (e *Expander) ExpandTerms(ctx context.Context, word string) ([]string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return []string{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildPrompt(word)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(e.temperature))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		e.logger.Error("failed to generate content", "word", word, "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrRequestFailed, err)
	}
	if response == nil || len(response.Choices) < 1 || response.Choices[0] == nil {
		e.logger.Warn("no choices returned from model", "word", word)
		return nil, ai.ErrEmptyResponse
	}

	terms := ai.LimitTerms(ai.SplitTerms(response.Choices[0].Content), e.maxTerms)
	e.logger.Debug("expanded terms", "word", word, "terms", len(terms))
	return terms, nil
}
