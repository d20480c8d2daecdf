// Package models implements the Provider abstraction over LLM backends,
// the per-provider Metrics ledger, the multi-account rotator, the
// health-aware RouterPolicy, and the ModelRouter that glues them together.
package models

import "context"

// AuthType classifies how a Provider authenticates, per the Provider
// contract in spec §6.
type AuthType string

const (
	AuthAPIKey AuthType = "APIKEY"
	AuthOAuth  AuthType = "LOGIN"
	AuthHybrid AuthType = "HYBRID"
)

// Provider is the uniform contract every LLM backend is exposed behind.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, taskContext map[string]any) (string, error)
	SupportsStreaming() bool
	AuthType() AuthType
}

// StreamingProvider is implemented by Providers that can additionally
// stream partial output; it is optional on top of Provider.
type StreamingProvider interface {
	Provider
	GenerateStream(ctx context.Context, prompt string, taskContext map[string]any) (<-chan string, error)
}
