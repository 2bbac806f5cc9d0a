package ports

import (
	"context"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// Target identifies whose account an operation acts on. Self is set on
// self-service routes and takes precedence; Param is the raw :userId path
// segment used by administrative routes. Actor is the caller and is only
// recorded, never used to pick the account.
type Target struct {
	Self  *domain.Claims
	Param string
	Actor *domain.Claims
}

// SelfTarget targets the authenticated caller.
func SelfTarget(claims domain.Claims) Target {
	return Target{Self: &claims, Actor: &claims}
}

// ParamTarget targets the user named in the path on behalf of actor.
func ParamTarget(raw string, actor domain.Claims) Target {
	return Target{Param: raw, Actor: &actor}
}

// RegisterInput is the public sign-up payload.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Password  string `json:"password" validate:"required,max=72,password_bytes"`
}

// LoginInput carries credentials for token issuance.
type LoginInput struct {
	Email    string `json:"email" validate:"required,max=255,email_format"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateProfileInput is a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName *string      `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string      `json:"last_name" validate:"omitempty,max=100"`
	Email     *string      `json:"email" validate:"omitempty,max=255,email_format"`
	Phone     *string      `json:"phone" validate:"omitempty,min=1,max=20"`
	Password  *string      `json:"password" validate:"omitempty,max=72,password_bytes,strong_password"`
	Role      *domain.Role `json:"role" validate:"omitempty,oneof=admin manager customer"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string           `json:"token"`
	User  domain.LoginUser `json:"user"`
}

// RegisterResult is returned on successful registration.
type RegisterResult struct {
	UserID int64 `json:"userId"`
}

// AuthService covers registration, sessions and profile management.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token string, caller domain.Claims) error

	GetProfile(ctx context.Context, target Target) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, target Target, in UpdateProfileInput) (*domain.User, error)

	// DeleteProfile returns the record as it was before deletion.
	DeleteProfile(ctx context.Context, target Target) (*domain.User, error)
}
