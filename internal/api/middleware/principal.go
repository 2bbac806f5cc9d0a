package middleware

import (
	"context"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// Principal is the verified caller of a protected request.
type Principal struct {
	Claims domain.Claims
	Token  string
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by the Auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
