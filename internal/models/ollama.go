package models

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	einoollama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/schema"

	"github.com/irisforge/irisd/internal/config"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaProvider wraps eino-ext's Ollama chat model, injecting the same
// validating transport the teacher uses to turn a non-JSON reverse-proxy
// error body into a typed ErrModelUnavailable that Metrics/Policy can
// react to.
type OllamaProvider struct {
	model *einoollama.ChatModel
}

// NewOllamaProvider constructs an OllamaProvider.
func NewOllamaProvider(ctx context.Context, cfg config.ProviderConfig) (*OllamaProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}

	modelConfig := &einoollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   cfg.Model,
	}
	if cfg.Timeout > 0 {
		modelConfig.Timeout = cfg.Timeout
	} else {
		modelConfig.Timeout = 300 * time.Second
	}

	opts := &einoollama.Options{}
	if cfg.MaxTokens > 0 {
		opts.NumPredict = cfg.MaxTokens
	}
	if temp, ok := cfg.Options["temperature"].(float64); ok {
		opts.Temperature = float32(temp)
	}
	if numCtx, ok := cfg.Options["num_ctx"].(float64); ok {
		opts.NumCtx = int(numCtx)
	}
	modelConfig.Options = opts

	modelConfig.HTTPClient = &http.Client{
		Timeout:   modelConfig.Timeout,
		Transport: &ollamaTransport{inner: http.DefaultTransport, provider: "ollama"},
	}

	m, err := einoollama.NewChatModel(ctx, modelConfig)
	if err != nil {
		return nil, err
	}
	return &OllamaProvider{model: m}, nil
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Generate(ctx context.Context, prompt string, taskContext map[string]any) (string, error) {
	msg, err := p.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", HandleError(err)
	}
	return msg.Content, nil
}

func (p *OllamaProvider) SupportsStreaming() bool { return true }

func (p *OllamaProvider) AuthType() AuthType { return AuthAPIKey }

var _ Provider = (*OllamaProvider)(nil)

// ollamaTransport detects non-JSON/ndjson error bodies — typically a
// reverse proxy in front of Ollama returning a plain-text failure — and
// turns them into a structured ErrModelUnavailable instead of letting the
// raw body leak into Generate's return value.
type ollamaTransport struct {
	inner    http.RoundTripper
	provider string
}

func (t *ollamaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, &ErrModelUnavailable{Provider: t.provider, Cause: err}
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &ErrModelUnavailable{Provider: t.provider, Body: strings.TrimSpace(string(body))}
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "json") && !strings.Contains(ct, "ndjson") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &ErrModelUnavailable{Provider: t.provider, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}
