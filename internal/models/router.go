package models

import (
	"context"
	"strings"
	"time"
)

// Router selects a Provider for each generate call using Policy +
// Metrics + Rotator, then records the outcome back into Metrics.
type Router struct {
	registry *Registry
	metrics  *Metrics
	policy   *Policy
	rotator  *Rotator
}

// NewRouter wires a Router over the given components. policy and rotator
// may be nil — generate then falls back to the registry default and
// skips account rotation, respectively.
func NewRouter(registry *Registry, metrics *Metrics, policy *Policy, rotator *Rotator) *Router {
	return &Router{registry: registry, metrics: metrics, policy: policy, rotator: rotator}
}

// Generate resolves a provider (explicit name, or Policy-selected, or the
// registry default), resolves an account via the Rotator if the provider
// requires auth, times the call, and records the outcome in Metrics.
func (r *Router) Generate(ctx context.Context, prompt string, taskContext map[string]any, explicitProvider string) (string, error) {
	name := explicitProvider
	if name == "" && r.policy != nil {
		goal, _ := taskContext["task_goal"].(string)
		if goal == "" {
			goal = truncate(prompt, 100)
		}
		_ = goal // the current scoring function only needs provider health, goal is reserved for future task-aware scoring
		if selected, ok := r.policy.SelectProvider(r.registry.Names(), true, r.streamingSupport(ctx)); ok {
			name = selected
		}
	}
	if name == "" {
		name = r.registry.DefaultName()
	}

	provider, err := r.registry.Get(ctx, name)
	if err != nil {
		return "", err
	}

	if r.rotator != nil && provider.AuthType() != AuthAPIKey {
		if accountID, ok, selErr := r.rotator.SelectAccount(name); selErr == nil && ok {
			taskContext = withAccountID(taskContext, accountID)
		}
	}

	start := time.Now()
	output, genErr := provider.Generate(ctx, prompt, taskContext)
	latencyMS := float64(time.Since(start).Milliseconds())

	promptTokens := wordCount(prompt)
	completionTokens := wordCount(output)
	_ = r.metrics.RecordGeneration(name, promptTokens, completionTokens, latencyMS, genErr == nil)

	if genErr != nil {
		return "", genErr
	}
	return output, nil
}

// streamingSupport builds a name→supports-streaming map by constructing
// (and caching, via the registry's lazy init) every configured provider.
// Construction failures are treated as "does not support streaming"
// rather than aborting generation.
func (r *Router) streamingSupport(ctx context.Context) map[string]bool {
	support := make(map[string]bool, len(r.registry.Names()))
	for _, name := range r.registry.Names() {
		p, err := r.registry.Get(ctx, name)
		if err != nil {
			continue
		}
		support[name] = p.SupportsStreaming()
	}
	return support
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// withAccountID returns a copy of ctx with account_id set, so the
// rotator's pick reaches the provider's own taskContext argument instead
// of being discarded after marking the account used.
func withAccountID(ctx map[string]any, accountID string) map[string]any {
	out := make(map[string]any, len(ctx)+1)
	for k, v := range ctx {
		out[k] = v
	}
	out["account_id"] = accountID
	return out
}
