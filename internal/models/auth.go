package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/irisforge/irisd/internal/config"
)

// ResolvedAuth holds credentials resolved for one provider configuration.
type ResolvedAuth struct {
	Kind  AuthType
	Value string
}

// ResolveAuth resolves a provider's credentials. Resolution order: direct
// bearer token → direct api key → driver's default environment variable.
// `${VAR}` templates in the config are expanded from the environment.
func ResolveAuth(cfg config.ProviderConfig) (ResolvedAuth, error) {
	expand := func(raw string) string {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return ""
		}
		if strings.HasPrefix(trimmed, "${") && strings.HasSuffix(trimmed, "}") {
			return os.Getenv(trimmed[2 : len(trimmed)-1])
		}
		return trimmed
	}

	if token := expand(cfg.Auth.Token); token != "" {
		return ResolvedAuth{Kind: AuthOAuth, Value: token}, nil
	}
	if apiKey := expand(cfg.Auth.APIKey); apiKey != "" {
		return ResolvedAuth{Kind: AuthAPIKey, Value: apiKey}, nil
	}

	switch strings.ToLower(cfg.Driver) {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return ResolvedAuth{Kind: AuthAPIKey, Value: key}, nil
		}
		return ResolvedAuth{}, fmt.Errorf("ANTHROPIC_API_KEY not set")
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return ResolvedAuth{Kind: AuthAPIKey, Value: key}, nil
		}
		return ResolvedAuth{}, fmt.Errorf("OPENAI_API_KEY not set")
	case "dummy":
		return ResolvedAuth{Kind: AuthAPIKey, Value: "dummy"}, nil
	default:
		return ResolvedAuth{}, fmt.Errorf("unknown driver %q: cannot resolve auth", cfg.Driver)
	}
}
