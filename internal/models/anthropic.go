package models

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/irisforge/irisd/internal/config"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-6"
	defaultAnthropicMaxTokens = 4096
)

// AnthropicProvider generates text via Anthropic's Messages API. Unlike
// the full tool-calling pipeline the chat-agent world needs, irisd's
// Worker extracts tool calls itself from free text (see internal/worker),
// so this driver only needs a single-turn prompt→text contract.
type AnthropicProvider struct {
	client    anthropic.Client
	modelName string
	maxTokens int
}

// NewAnthropicProvider builds a Provider wrapping the Anthropic SDK
// client, constructed the same way as the teacher's NewAnthropic: bearer
// token vs. API key auth, optional BaseURL/Timeout overrides.
func NewAnthropicProvider(cfg config.ProviderConfig, auth ResolvedAuth) *AnthropicProvider {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	var opts []option.RequestOption
	if auth.Kind == AuthOAuth {
		opts = append(opts, option.WithAuthToken(auth.Value))
	} else {
		opts = append(opts, option.WithAPIKey(auth.Value))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	} else {
		opts = append(opts, option.WithRequestTimeout(60*time.Second))
	}

	return &AnthropicProvider{
		client:    anthropic.NewClient(opts...),
		modelName: modelName,
		maxTokens: maxTokens,
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, taskContext map[string]any) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.modelName),
		MaxTokens: int64(p.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", HandleError(err)
	}

	var out string
	for _, block := range resp.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out, nil
}

func (p *AnthropicProvider) SupportsStreaming() bool { return true }

func (p *AnthropicProvider) AuthType() AuthType { return AuthHybrid }

var _ Provider = (*AnthropicProvider)(nil)
