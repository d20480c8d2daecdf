package models

import (
	"context"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/irisforge/irisd/internal/config"
)

// OpenAIProvider wraps eino-ext's OpenAI chat model, built the same way
// as the teacher's NewOpenAI, behind the single-turn Provider contract.
type OpenAIProvider struct {
	model *einoopenai.ChatModel
}

// NewOpenAIProvider constructs an OpenAIProvider.
func NewOpenAIProvider(ctx context.Context, cfg config.ProviderConfig, auth ResolvedAuth) (*OpenAIProvider, error) {
	modelConfig := &einoopenai.ChatModelConfig{
		APIKey: auth.Value,
		Model:  cfg.Model,
	}
	if cfg.BaseURL != "" {
		modelConfig.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxCompletionTokens = &maxTokens
	}
	if cfg.Timeout > 0 {
		modelConfig.Timeout = cfg.Timeout
	} else {
		modelConfig.Timeout = 60 * time.Second
	}
	if temp, ok := cfg.Options["temperature"].(float64); ok {
		t := float32(temp)
		modelConfig.Temperature = &t
	}

	m, err := einoopenai.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}
	return &OpenAIProvider{model: m}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, taskContext map[string]any) (string, error) {
	msg, err := p.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", HandleError(err)
	}
	return msg.Content, nil
}

func (p *OpenAIProvider) SupportsStreaming() bool { return true }

func (p *OpenAIProvider) AuthType() AuthType { return AuthAPIKey }

var _ Provider = (*OpenAIProvider)(nil)
