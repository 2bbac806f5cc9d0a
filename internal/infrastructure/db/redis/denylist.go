package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist stores revoked tokens in Redis until they expire.
// Key format: denylist:<sha256(token)>
type TokenDenylist struct {
	client redis.Cmdable
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client redis.Cmdable) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Add denylists token for ttl. A non-positive ttl is a no-op: such a token is
// already expired and verification rejects it anyway.
func (d *TokenDenylist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist add: %w", err)
	}
	return nil
}

// Contains reports whether token has been revoked.
func (d *TokenDenylist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "denylist:" + hex.EncodeToString(sum[:])
}
