// Package llm talks to the external text-generation endpoint. Every
// provider turns one prompt into one raw text reply and classifies
// failures with the prd error taxonomy.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prdforge/prdforge/backend/go-services/internal/config"
	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
	"github.com/prdforge/prdforge/backend/go-services/pkg/metrics"
)

// Generator sends a prompt and returns the raw reply text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	defaultGeminiModel    = "gemini-2.0-flash"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

// New builds the configured provider. A missing API key still yields a
// usable Generator whose calls fail with prd.ErrConfiguration.
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiClient(ctx, GeminiOptions{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	case ProviderAnthropic:
		return NewAnthropicClient(AnthropicOptions{
			APIKey:     cfg.AnthropicAPIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			MaxTokens:  cfg.MaxTokens,
			HTTPClient: httpClient,
		}), nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", prd.ErrConfiguration, cfg.Provider)
}

// observe records call latency for provider.
func observe(provider string, start time.Time) {
	metrics.GenerationDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
