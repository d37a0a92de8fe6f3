package session

import (
	"context"
	"sync"
	"time"
)

const blacklistKeyPrefix = "jwt:blacklist:"

// Blacklist stores revoked JWT IDs (jti claims) until their natural
// expiration. It prefers Redis and falls back to an in-process map when no
// Redis client is available, so logout still works in single-node setups.
type Blacklist struct {
	mu    sync.RWMutex
	local map[string]time.Time
}

// NewBlacklist creates a revocation store backed by the package Redis client.
func NewBlacklist() *Blacklist {
	return &Blacklist{local: make(map[string]time.Time)}
}

// Revoke marks a token ID as revoked until expiresAt.
func (b *Blacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if rc := GetClient(); rc != nil {
		return rc.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
	}

	b.mu.Lock()
	b.local[jti] = expiresAt
	b.mu.Unlock()
	return nil
}

// IsRevoked reports whether a token ID was revoked before natural expiration.
// On a Redis error it fails open to avoid locking every caller out.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if rc := GetClient(); rc != nil {
		n, err := rc.Exists(ctx, blacklistKeyPrefix+jti).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	b.mu.RLock()
	expiresAt, ok := b.local[jti]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if time.Now().After(expiresAt) {
		b.mu.Lock()
		delete(b.local, jti)
		b.mu.Unlock()
		return false, nil
	}

	return true, nil
}
