package models

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownMirror is an optional, pluggable sink that mirrors a provider's
// cooldown state outside the local file store, so multiple irisd processes
// sharing one task store can also share rate-limit backoff instead of each
// rediscovering it independently. The file-backed Metrics store remains the
// single source of truth; a mirror failure never blocks a generation.
type CooldownMirror interface {
	SetCooldown(ctx context.Context, provider string, until time.Time) error
	GetCooldown(ctx context.Context, provider string) (time.Time, bool, error)
}

// RedisCooldownMirror mirrors cooldowns into Redis keys under a fixed
// prefix, with a TTL matching the cooldown window so stale entries expire
// on their own.
type RedisCooldownMirror struct {
	client *redis.Client
	prefix string
}

// NewRedisCooldownMirror returns a mirror backed by client. prefix
// namespaces the keys (e.g. "irisd:cooldown:").
func NewRedisCooldownMirror(client *redis.Client, prefix string) *RedisCooldownMirror {
	if prefix == "" {
		prefix = "irisd:cooldown:"
	}
	return &RedisCooldownMirror{client: client, prefix: prefix}
}

func (r *RedisCooldownMirror) key(provider string) string {
	return r.prefix + provider
}

// SetCooldown writes until for provider with a TTL equal to the remaining
// cooldown window; a past or zero until is a no-op.
func (r *RedisCooldownMirror) SetCooldown(ctx context.Context, provider string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(provider), until.Format(time.RFC3339Nano), ttl).Err()
}

// GetCooldown returns the mirrored cooldown deadline for provider, if any
// key is still present (Redis expires it automatically once it lapses).
func (r *RedisCooldownMirror) GetCooldown(ctx context.Context, provider string) (time.Time, bool, error) {
	val, err := r.client.Get(ctx, r.key(provider)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	until, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, err
	}
	return until, true, nil
}
