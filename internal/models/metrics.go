package models

import (
	"context"
	"strings"
	"time"

	"github.com/irisforge/irisd/internal/store"
)

// ProviderMetric is the persisted per-provider ledger of §3.
type ProviderMetric struct {
	Requests         int       `json:"requests"`
	Successes        int       `json:"successes"`
	Failures         int       `json:"failures"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	LatencySum       float64   `json:"latency_sum"`
	AvgLatency       float64   `json:"avg_latency"`
	LastRequestAt    time.Time `json:"last_request_at"`
	RateLimited      bool      `json:"rate_limited"`
	CooldownUntil    time.Time `json:"cooldown_until"`
}

// Health is the derived, non-persisted view returned by GetHealth.
type Health struct {
	Provider      string
	Available     bool
	HealthScore   float64
	TotalRequests int
	SuccessRate   float64
	AvgLatencyMS  float64
	RateLimited   bool
	InCooldown    bool
}

type metricsDoc map[string]ProviderMetric

// Metrics is the process-wide, persisted ledger of per-provider success,
// latency and cooldown state. Every mutation is atomic and serialized by
// the underlying Store.
type Metrics struct {
	store  *store.Store[metricsDoc]
	now    func() time.Time
	mirror CooldownMirror
}

// NewMetrics returns a Metrics backed by path (typically
// data/model_metrics.json).
func NewMetrics(path string) *Metrics {
	return &Metrics{store: store.New[metricsDoc](path), now: time.Now}
}

// SetCooldownMirror attaches an optional distributed mirror; pass nil to
// disable mirroring. The file store stays authoritative regardless.
func (m *Metrics) SetCooldownMirror(mirror CooldownMirror) {
	m.mirror = mirror
}

// RecordGeneration updates the rolling counters/latency for provider
// after one generation attempt.
func (m *Metrics) RecordGeneration(provider string, promptTokens, completionTokens int, latencyMS float64, success bool) error {
	return m.store.Update(func(doc metricsDoc) (metricsDoc, error) {
		if doc == nil {
			doc = metricsDoc{}
		}
		pm := doc[provider]
		pm.Requests++
		if success {
			pm.Successes++
		} else {
			pm.Failures++
		}
		pm.PromptTokens += promptTokens
		pm.CompletionTokens += completionTokens
		pm.LatencySum += latencyMS
		pm.AvgLatency = pm.LatencySum / float64(pm.Requests)
		pm.LastRequestAt = m.now()
		doc[provider] = pm
		return doc, nil
	})
}

// rateLimitIndicators are substrings that, when found in any response
// header value, mark the provider rate-limited.
var rateLimitIndicators = []string{"429", "rate_limit", "rate limit", "quota", "limit"}

// CheckRateLimit scans header values for rate-limit indicators; on a hit
// it sets rate_limited and a 120s cooldown and returns true. Left
// hookable per spec §9: no driver currently wires real HTTP response
// headers through to this method.
func (m *Metrics) CheckRateLimit(provider string, headers map[string]string) (bool, error) {
	hit := false
	for _, v := range headers {
		if containsAny(strings.ToLower(v), rateLimitIndicators...) {
			hit = true
			break
		}
	}
	if !hit {
		return false, nil
	}

	until := m.now().Add(120 * time.Second)
	err := m.store.Update(func(doc metricsDoc) (metricsDoc, error) {
		if doc == nil {
			doc = metricsDoc{}
		}
		pm := doc[provider]
		pm.RateLimited = true
		pm.CooldownUntil = until
		doc[provider] = pm
		return doc, nil
	})
	if err == nil && m.mirror != nil {
		// Best-effort: a mirror write failure never fails the local cooldown.
		_ = m.mirror.SetCooldown(context.Background(), provider, until)
	}
	return true, err
}

// GetHealth computes the derived health view for provider, matching the
// scoring in agent/model_metrics.py: success_rate base, halved under a
// rate limit, penalized for a high failure rate, halved again while in
// cooldown, and discounted 20% above a 5s average latency.
func (m *Metrics) GetHealth(provider string) (Health, error) {
	doc, err := m.store.Load()
	if err != nil {
		return Health{}, err
	}
	pm, ok := doc[provider]
	if !ok {
		return Health{Provider: provider, Available: true, HealthScore: 1.0}, nil
	}

	successRate := 0.0
	if pm.Requests > 0 {
		successRate = float64(pm.Successes) / float64(pm.Requests)
	}

	score := successRate
	switch {
	case pm.RateLimited:
		score = max(0.1, successRate) * 0.5
	case pm.Requests > 0 && float64(pm.Failures)/float64(pm.Requests) > 0.2:
		score = max(0.1, successRate*0.7)
	}

	now := m.now()
	inCooldown := !pm.CooldownUntil.IsZero() && now.Before(pm.CooldownUntil)
	if inCooldown {
		score *= 0.5
	}
	if pm.AvgLatency > 5000 {
		score *= 0.8
	}

	return Health{
		Provider:      provider,
		Available:     score > 0.5,
		HealthScore:   score,
		TotalRequests: pm.Requests,
		SuccessRate:   successRate,
		AvgLatencyMS:  pm.AvgLatency,
		RateLimited:   pm.RateLimited,
		InCooldown:    inCooldown,
	}, nil
}

// IsAvailable reports whether provider may currently be routed to.
func (m *Metrics) IsAvailable(provider string) (bool, error) {
	h, err := m.GetHealth(provider)
	if err != nil {
		return false, err
	}
	return h.Available && !h.InCooldown, nil
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
