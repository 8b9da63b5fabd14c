package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

// GeminiOptions configures GeminiClient. BaseURL is only set in tests.
type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
}

// GeminiClient generates text with the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiClient returns a client; with no API key every call fails with
// prd.ErrConfiguration.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	g := &GeminiClient{model: opts.Model}
	if g.model == "" {
		g.model = defaultGeminiModel
	}
	g.config = &genai.GenerateContentConfig{Temperature: genai.Ptr(opts.Temperature)}
	if opts.MaxTokens > 0 {
		g.config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.APIKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiClient) Name() string { return ProviderGemini }

// Generate sends prompt as a single user turn and returns the text parts
// of the first candidate, skipping thought parts.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not set", prd.ErrConfiguration)
	}
	defer observe(ProviderGemini, time.Now())

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("%w: %w", prd.ErrTransport, err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		break
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", prd.ErrEmptyResponse
	}
	return b.String(), nil
}
