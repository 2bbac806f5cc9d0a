package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

type authService struct {
	users  ports.UserRepository
	guards *Guards
	hasher *PasswordHasher
	tokens *TokenService
	audit  ports.AuditSink
	log    zerolog.Logger
}

// NewAuthService returns an AuthService implementation. audit may be nil.
func NewAuthService(
	users ports.UserRepository,
	guards *Guards,
	hasher *PasswordHasher,
	tokens *TokenService,
	audit ports.AuditSink,
	log zerolog.Logger,
) ports.AuthService {
	return &authService{
		users:  users,
		guards: guards,
		hasher: hasher,
		tokens: tokens,
		audit:  audit,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	in.Email = normalizeEmail(in.Email)

	// 1. Credentials present.
	if err := s.guards.RequireCredentials(in.FirstName, in.Email, in.Phone, in.Password); err != nil {
		return nil, err
	}
	// 2. Payload shape, then field formats.
	if err := s.guards.ValidateSchema(in); err != nil {
		return nil, err
	}
	if err := s.guards.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := s.guards.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	// 3. Uniqueness. The unique constraints catch races past this point.
	if err := s.guards.EmailAvailable(ctx, in.Email, 0); err != nil {
		return nil, err
	}
	if err := s.guards.PhoneAvailable(ctx, in.Phone, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	id, err := s.users.Create(ctx, domain.NewUser{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("user_id", id).Msg("user registered")
	s.record(domain.AuthEvent{Kind: domain.EventRegistered, UserID: id, ActorID: id, Email: in.Email})
	return &ports.RegisterResult{UserID: id}, nil
}

func (s *authService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	in.Email = normalizeEmail(in.Email)

	if err := s.guards.RequireCredentials(in.Email, in.Password); err != nil {
		return nil, err
	}
	if err := s.guards.ValidateSchema(in); err != nil {
		return nil, err
	}

	user, err := s.guards.CheckPassword(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Debug().Str("email", in.Email).Msg("login rejected")
			s.record(domain.AuthEvent{Kind: domain.EventLoginFailure, Email: in.Email})
		}
		return nil, err
	}

	token, err := s.tokens.Issue(domain.ClaimsFor(user), s.tokens.TTL())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.record(domain.AuthEvent{Kind: domain.EventLoginSuccess, UserID: user.ID, ActorID: user.ID, Email: user.Email})
	return &ports.LoginResult{Token: token, User: user.Projection()}, nil
}

func (s *authService) Logout(ctx context.Context, token string, caller domain.Claims) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	s.record(domain.AuthEvent{Kind: domain.EventLogout, UserID: caller.UserID, ActorID: caller.UserID, Email: caller.Email})
	return nil
}

func (s *authService) GetProfile(ctx context.Context, target ports.Target) (*domain.User, error) {
	id, err := s.guards.ResolveUserID(target)
	if err != nil {
		return nil, err
	}
	return s.guards.UserExists(ctx, id)
}

func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrUsersNotFound
	}
	return users, nil
}

func (s *authService) UpdateProfile(ctx context.Context, target ports.Target, in ports.UpdateProfileInput) (*domain.User, error) {
	// 1. Whose account.
	id, err := s.guards.ResolveUserID(target)
	if err != nil {
		return nil, err
	}
	// 2. Payload shape. Only administrative updates may change the role.
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := s.guards.ValidateSchema(in); err != nil {
		return nil, err
	}
	if in.Role != nil {
		if target.Self != nil {
			return nil, domain.NewValidationError(`"role" is not allowed`)
		}
		// managers pass requireAdmin but may not grant or revoke roles
		if target.Actor == nil || target.Actor.Role != domain.RoleAdmin {
			return nil, domain.ErrAdminAccessRequired
		}
	}
	// 3. Target exists.
	current, err := s.guards.UserExists(ctx, id)
	if err != nil {
		return nil, err
	}
	// 4. Uniqueness against everyone but the target.
	if in.Email != nil {
		if err := s.guards.EmailAvailable(ctx, *in.Email, id); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		if err := s.guards.PhoneAvailable(ctx, *in.Phone, id); err != nil {
			return nil, err
		}
	}

	upd := domain.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Role:      in.Role,
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		upd.PasswordHash = &hash
	}

	updated, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrUserNotFound
	}

	if !upd.Empty() {
		s.log.Info().Int64("user_id", id).Int64("actor_id", actorID(target)).Msg("profile updated")
		s.record(domain.AuthEvent{Kind: domain.EventProfileUpdate, UserID: id, ActorID: actorID(target), Email: updated.Email})
	}
	if in.Role != nil && *in.Role != current.Role {
		s.record(domain.AuthEvent{
			Kind:    domain.EventRoleChanged,
			UserID:  id,
			ActorID: actorID(target),
			Email:   updated.Email,
			Detail:  string(current.Role) + "->" + string(*in.Role),
		})
	}
	return updated, nil
}

func (s *authService) DeleteProfile(ctx context.Context, target ports.Target) (*domain.User, error) {
	id, err := s.guards.ResolveUserID(target)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.guards.UserExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}

	s.log.Info().Int64("user_id", id).Int64("actor_id", actorID(target)).Msg("user deleted")
	s.record(domain.AuthEvent{Kind: domain.EventUserDeleted, UserID: id, ActorID: actorID(target), Email: snapshot.Email})
	return snapshot, nil
}

func (s *authService) record(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	s.audit.Record(event)
}

func actorID(t ports.Target) int64 {
	if t.Actor == nil {
		return 0
	}
	return t.Actor.UserID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
