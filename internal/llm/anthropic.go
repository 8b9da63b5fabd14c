package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/prdforge/prdforge/backend/go-services/internal/prd"
)

// AnthropicOptions configures AnthropicClient.
type AnthropicOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

// AnthropicClient generates text with the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	enabled   bool
	model     string
	maxTokens int
}

// NewAnthropicClient never fails; with no API key every call returns
// prd.ErrConfiguration. The SDK's own retries are disabled so a failed
// call surfaces at once.
func NewAnthropicClient(opts AnthropicOptions) *AnthropicClient {
	a := &AnthropicClient{
		enabled:   opts.APIKey != "",
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
	}
	if a.model == "" {
		a.model = defaultAnthropicModel
	}
	if a.maxTokens <= 0 {
		a.maxTokens = 8192
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	a.client = anthropic.NewClient(reqOpts...)
	return a
}

func (a *AnthropicClient) Name() string { return ProviderAnthropic }

func (a *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !a.enabled {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", prd.ErrConfiguration)
	}
	defer observe(ProviderAnthropic, time.Now())

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", prd.ErrTransport, err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", prd.ErrEmptyResponse
	}
	return b.String(), nil
}
