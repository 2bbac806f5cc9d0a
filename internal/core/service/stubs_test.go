package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/validation"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *stubUserRepo) FindByEmailExcludingID(_ context.Context, email string, excludeID int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email && u.ID != excludeID })
}

func (r *stubUserRepo) FindByPhoneExcludingID(_ context.Context, phone string, excludeID int64) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone && u.ID != excludeID })
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, nu domain.NewUser) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	for _, u := range r.users {
		if u.Email == nu.Email {
			return 0, domain.ErrEmailAlreadyExists
		}
		if u.Phone == nu.Phone {
			return 0, domain.ErrPhoneAlreadyExists
		}
	}
	r.nextID++
	now := time.Now().UTC()
	r.users[r.nextID] = &domain.User{
		ID:           r.nextID,
		FirstName:    nu.FirstName,
		LastName:     nu.LastName,
		Email:        nu.Email,
		Phone:        nu.Phone,
		PasswordHash: nu.PasswordHash,
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return r.nextID, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if !upd.Empty() {
		u.UpdatedAt = time.Now().UTC()
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	delete(r.users, id)
	return nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (s *recordingSink) Record(e domain.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) kinds() []domain.AuthEventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuthEventKind, len(s.events))
	for i, e := range s.events {
		out[i] = e.Kind
	}
	return out
}

type fixture struct {
	users  *stubUserRepo
	deny   *memDenylist
	sink   *recordingSink
	hasher *PasswordHasher
	tokens *TokenService
	guards *Guards
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:  newStubUserRepo(),
		deny:   newMemDenylist(),
		sink:   &recordingSink{},
		hasher: NewPasswordHasher(bcrypt.MinCost),
	}
	var err error
	f.tokens, err = NewTokenService("test-secret", 15*time.Minute, f.deny)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	f.guards, err = NewGuards(f.users, f.hasher, validation.NewSchema())
	if err != nil {
		t.Fatalf("NewGuards: %v", err)
	}
	return f
}

func (f *fixture) auth() *authService {
	return NewAuthService(f.users, f.guards, f.hasher, f.tokens, f.sink, zerolog.Nop()).(*authService)
}

// seed stores a user directly with the given password and role.
func (f *fixture) seed(t *testing.T, email, phone, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id, err := f.users.Create(context.Background(), domain.NewUser{
		FirstName: "Seed", Email: email, Phone: phone, PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	f.users.users[id].Role = role
	return cloneUser(f.users.users[id])
}

func strptr(s string) *string { return &s }
