package models

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisMirror(t *testing.T) *RedisCooldownMirror {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCooldownMirror(client, "")
}

func TestRedisCooldownMirrorRoundTrip(t *testing.T) {
	mirror := newTestRedisMirror(t)
	ctx := context.Background()
	until := time.Now().Add(time.Minute).Truncate(time.Millisecond)

	if err := mirror.SetCooldown(ctx, "openai", until); err != nil {
		t.Fatalf("SetCooldown: %v", err)
	}

	got, ok, err := mirror.GetCooldown(ctx, "openai")
	if err != nil {
		t.Fatalf("GetCooldown: %v", err)
	}
	if !ok || !got.Equal(until) {
		t.Fatalf("expected mirrored cooldown %v, got %v ok=%v", until, got, ok)
	}
}

func TestRedisCooldownMirrorMissingKey(t *testing.T) {
	mirror := newTestRedisMirror(t)
	_, ok, err := mirror.GetCooldown(context.Background(), "anthropic")
	if err != nil {
		t.Fatalf("GetCooldown: %v", err)
	}
	if ok {
		t.Fatal("expected no cooldown for unset provider")
	}
}

func TestMetricsCheckRateLimitMirrorsCooldown(t *testing.T) {
	m := NewMetrics(t.TempDir() + "/metrics.json")
	mirror := newTestRedisMirror(t)
	m.SetCooldownMirror(mirror)

	hit, err := m.CheckRateLimit("openai", map[string]string{"X-RateLimit": "rate_limit exceeded"})
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if !hit {
		t.Fatal("expected rate limit hit")
	}

	_, ok, err := mirror.GetCooldown(context.Background(), "openai")
	if err != nil {
		t.Fatalf("GetCooldown: %v", err)
	}
	if !ok {
		t.Fatal("expected cooldown mirrored to redis")
	}
}
