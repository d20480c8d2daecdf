package models

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMetricsSuccessesPlusFailuresEqualsRequests(t *testing.T) {
	m := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))

	if err := m.RecordGeneration("openai", 10, 20, 100, true); err != nil {
		t.Fatalf("RecordGeneration: %v", err)
	}
	if err := m.RecordGeneration("openai", 5, 5, 50, false); err != nil {
		t.Fatalf("RecordGeneration: %v", err)
	}

	health, err := m.GetHealth("openai")
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if health.TotalRequests != 2 {
		t.Fatalf("expected 2 total requests, got %d", health.TotalRequests)
	}
}

func TestMetricsUnknownProviderIsAvailable(t *testing.T) {
	m := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))

	ok, err := m.IsAvailable("never-seen")
	if err != nil {
		t.Fatalf("IsAvailable: %v", err)
	}
	if !ok {
		t.Fatal("expected unseen provider to be available with health 1.0")
	}
}

func TestMetricsCheckRateLimitSetsCooldown(t *testing.T) {
	m := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	hit, err := m.CheckRateLimit("openai", map[string]string{"X-Error": "rate limit exceeded"})
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if !hit {
		t.Fatal("expected rate limit hit")
	}

	health, _ := m.GetHealth("openai")
	if !health.RateLimited || !health.InCooldown {
		t.Fatalf("expected rate-limited+cooldown health, got %+v", health)
	}
}

func TestMetricsHighFailureRateLowersHealth(t *testing.T) {
	m := NewMetrics(filepath.Join(t.TempDir(), "metrics.json"))
	for i := 0; i < 8; i++ {
		_ = m.RecordGeneration("flaky", 1, 1, 10, false)
	}
	for i := 0; i < 2; i++ {
		_ = m.RecordGeneration("flaky", 1, 1, 10, true)
	}

	health, _ := m.GetHealth("flaky")
	if health.Available {
		t.Fatalf("expected unavailable provider with mostly failures, got %+v", health)
	}
}
