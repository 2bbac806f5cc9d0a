package ports

import (
	"context"
	"time"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// TokenDenylist remembers revoked tokens until they would have expired anyway.
type TokenDenylist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// TokenAuthenticator turns an Authorization header into verified claims. It
// also returns the raw token so it can later be revoked.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, authorization string) (domain.Claims, string, error)
}
