package models

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/irisforge/irisd/internal/config"
)

// entry lazily constructs its Provider exactly once, matching the
// teacher's per-provider sync.Once init so a misconfigured driver that's
// never used never fails startup.
type entry struct {
	cfg      config.ProviderConfig
	once     sync.Once
	provider Provider
	err      error
}

// Registry is the name → Provider map. It also doubles as the Registry
// half of "ProviderRegistry / Provider" from spec §2.
type Registry struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	defaultName string
}

// NewRegistry builds a Registry from a set of provider configs keyed by
// name, choosing "openai" as the default iff its credentials are
// resolvable, else "dummy" (spec §6 env var note).
func NewRegistry(cfgs map[string]config.ProviderConfig) *Registry {
	r := &Registry{entries: make(map[string]*entry, len(cfgs)+1)}
	for name, cfg := range cfgs {
		r.entries[name] = &entry{cfg: cfg}
	}
	if _, ok := r.entries["dummy"]; !ok {
		r.entries["dummy"] = &entry{cfg: config.ProviderConfig{Driver: "dummy"}}
	}

	r.defaultName = "dummy"
	if cfg, ok := cfgs["openai"]; ok {
		if _, err := ResolveAuth(cfg); err == nil {
			r.defaultName = "openai"
		}
	}
	return r
}

// DefaultName returns the provider name used when a caller doesn't pick
// one explicitly.
func (r *Registry) DefaultName() string { return r.defaultName }

// Names returns every configured provider name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Get returns the named Provider, lazily constructing it on first use.
func (r *Registry) Get(ctx context.Context, name string) (Provider, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}

	e.once.Do(func() {
		e.provider, e.err = build(ctx, name, e.cfg)
	})
	return e.provider, e.err
}

func build(ctx context.Context, name string, cfg config.ProviderConfig) (Provider, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "" {
		driver = name
	}
	switch driver {
	case "dummy":
		return &DummyProvider{}, nil
	case "anthropic":
		auth, err := ResolveAuth(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve auth for %s: %w", name, err)
		}
		return NewAnthropicProvider(cfg, auth), nil
	case "openai":
		auth, err := ResolveAuth(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve auth for %s: %w", name, err)
		}
		return NewOpenAIProvider(ctx, cfg, auth)
	case "ollama":
		return NewOllamaProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown driver %q for provider %s", cfg.Driver, name)
	}
}
