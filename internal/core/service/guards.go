package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
	"github.com/storefront/storefront-api/internal/core/validation"
)

// Guards holds the reusable checks every account operation runs before it
// touches storage. Each check returns nil or a single *domain.AppError;
// storage failures are wrapped and left for the responder to turn into 500s.
type Guards struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	schema *validation.Schema

	// compared against when the email is unknown so both login failures
	// cost one bcrypt comparison
	dummyHash string
}

// NewGuards builds the guard set. It hashes one throwaway password.
func NewGuards(users ports.UserRepository, hasher *PasswordHasher, schema *validation.Schema) (*Guards, error) {
	dummy, err := hasher.Hash("dummy-Password1!")
	if err != nil {
		return nil, err
	}
	return &Guards{users: users, hasher: hasher, schema: schema, dummyHash: dummy}, nil
}

// ResolveUserID picks the target account: the token identity when present,
// otherwise the path parameter.
func (g *Guards) ResolveUserID(t ports.Target) (int64, error) {
	if t.Self != nil {
		if t.Self.UserID <= 0 {
			return 0, domain.ErrUnauthorizedAccess
		}
		return t.Self.UserID, nil
	}
	if t.Param == "" {
		return 0, domain.ErrUnauthorizedAccess
	}
	id, err := strconv.ParseInt(t.Param, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidUserID
	}
	return id, nil
}

// ValidateSchema checks payload against its `validate` tags.
func (g *Guards) ValidateSchema(payload any) error {
	return g.schema.Validate(payload)
}

// RequireCredentials fails with MISSING_CREDENTIALS when any value is blank.
func (g *Guards) RequireCredentials(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return domain.ErrMissingCredentials
		}
	}
	return nil
}

func (g *Guards) ValidateEmail(email string) error {
	if !validation.IsValidEmail(email) {
		return domain.NewValidationError(domain.MsgInvalidEmailFormat)
	}
	return nil
}

func (g *Guards) ValidatePassword(password string) error {
	if !validation.IsValidPassword(password) {
		return domain.NewValidationError(domain.MsgInvalidPasswordFormat)
	}
	return nil
}

// UserExists loads the user or fails with USER_NOT_FOUND.
func (g *Guards) UserExists(ctx context.Context, id int64) (*domain.User, error) {
	user, err := g.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// EmailAvailable fails with EMAIL_ALREADY_EXISTS when another account uses
// email. excludeID of zero checks against every account.
func (g *Guards) EmailAvailable(ctx context.Context, email string, excludeID int64) error {
	var (
		existing *domain.User
		err      error
	)
	if excludeID > 0 {
		existing, err = g.users.FindByEmailExcludingID(ctx, email, excludeID)
	} else {
		existing, err = g.users.FindByEmail(ctx, email)
	}
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// PhoneAvailable is EmailAvailable for phone numbers.
func (g *Guards) PhoneAvailable(ctx context.Context, phone string, excludeID int64) error {
	var (
		existing *domain.User
		err      error
	)
	if excludeID > 0 {
		existing, err = g.users.FindByPhoneExcludingID(ctx, phone, excludeID)
	} else {
		existing, err = g.users.FindByPhone(ctx, phone)
	}
	if err != nil {
		return fmt.Errorf("check phone: %w", err)
	}
	if existing != nil {
		return domain.ErrPhoneAlreadyExists
	}
	return nil
}

// CheckPassword returns the user owning email when password matches. Unknown
// emails and wrong passwords produce the same INVALID_CREDENTIALS error.
func (g *Guards) CheckPassword(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		g.hasher.Verify(password, g.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !g.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
