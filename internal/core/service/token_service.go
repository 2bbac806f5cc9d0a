package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// ErrEmptySecret is returned when the signing secret is not configured.
var ErrEmptySecret = errors.New("token signing secret is empty")

type tokenClaims struct {
	UserID int64       `json:"id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues, verifies and revokes HS256 access tokens.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.TokenDenylist
	now      func() time.Time
}

// NewTokenService fails when secret is empty. A non-positive ttl falls back
// to 15 minutes.
func NewTokenService(secret string, ttl time.Duration, denylist ports.TokenDenylist) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
	}, nil
}

// TTL is the configured lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs claims with an expiry of ttl from now. Every token carries a
// random ID, so repeated calls never return the same string.
func (s *TokenService) Issue(claims domain.Claims, ttl time.Duration) (string, error) {
	now := s.now()
	tc := tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(claims.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the denylist before the signature, so a revoked token is
// rejected even while its signature and expiry are still valid.
func (s *TokenService) Verify(ctx context.Context, token string) (domain.Claims, error) {
	if token == "" {
		return domain.Claims{}, domain.ErrNoTokenProvided
	}

	revoked, err := s.denylist.Contains(ctx, token)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("check token denylist: %w", err)
	}
	if revoked {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	var tc tokenClaims
	_, err = jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	return domain.Claims{UserID: tc.UserID, Email: tc.Email, Role: tc.Role}, nil
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it.
func (s *TokenService) Authenticate(ctx context.Context, authorization string) (domain.Claims, string, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return domain.Claims{}, "", err
	}
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return domain.Claims{}, "", err
	}
	return claims, token, nil
}

// Revoke denylists token for the configured token lifetime.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.denylist.Add(ctx, token, s.ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// BearerToken returns the token of a "Bearer <token>" header. Anything else
// is reported as NO_TOKEN_PROVIDED.
func BearerToken(authorization string) (string, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", domain.ErrNoTokenProvided
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	if token == "" {
		return "", domain.ErrNoTokenProvided
	}
	return token, nil
}
