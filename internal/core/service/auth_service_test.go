package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/storefront/storefront-api/internal/core/domain"
	"github.com/storefront/storefront-api/internal/core/ports"
)

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: "John",
		Email:     "john@x.com",
		Phone:     "123",
		Password:  "Password1!",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()

	res, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.UserID <= 0 {
		t.Fatalf("expected positive id, got %d", res.UserID)
	}

	stored := f.users.users[res.UserID]
	if stored.PasswordHash == "Password1!" {
		t.Fatal("expected password to be hashed")
	}
	if !f.hasher.Verify("Password1!", stored.PasswordHash) {
		t.Fatal("stored hash does not match password")
	}
	if stored.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", stored.Role)
	}
	if kinds := f.sink.kinds(); len(kinds) != 1 || kinds[0] != domain.EventRegistered {
		t.Fatalf("unexpected audit events %v", kinds)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newFixture(t).auth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	in := validRegistration()
	in.Phone = "456"
	in.Email = "  JOHN@x.com "
	if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicatePhone(t *testing.T) {
	svc := newFixture(t).auth()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	in := validRegistration()
	in.Email = "other@x.com"
	if _, err := svc.Register(ctx, in); !errors.Is(err, domain.ErrPhoneAlreadyExists) {
		t.Fatalf("expected ErrPhoneAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_GuardOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ports.RegisterInput)
		want    error
		message string
	}{
		{"missing password", func(in *ports.RegisterInput) { in.Password = "" }, domain.ErrMissingCredentials, ""},
		{"missing first name", func(in *ports.RegisterInput) { in.FirstName = " " }, domain.ErrMissingCredentials, ""},
		{"schema before format", func(in *ports.RegisterInput) {
			in.Email = "bad"
			in.LastName = string(make([]byte, 101))
		}, domain.ErrValidation, `"last_name" length must be less than or equal to 100 characters long`},
		{"email format", func(in *ports.RegisterInput) { in.Email = "bad" }, domain.ErrValidation, domain.MsgInvalidEmailFormat},
		{"email before password", func(in *ports.RegisterInput) {
			in.Email = "bad"
			in.Password = "weak"
		}, domain.ErrValidation, domain.MsgInvalidEmailFormat},
		{"password strength", func(in *ports.RegisterInput) { in.Password = "password" }, domain.ErrValidation, domain.MsgInvalidPasswordFormat},
		{"password over bcrypt byte limit", func(in *ports.RegisterInput) {
			in.Password = "Aa1!" + strings.Repeat("é", 60)
		}, domain.ErrValidation, `"password" length must be less than or equal to 72 bytes long`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validRegistration()
			tt.mutate(&in)

			_, err := f.auth().Register(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var appErr *domain.AppError
			if tt.message != "" && (!errors.As(err, &appErr) || appErr.Message != tt.message) {
				t.Fatalf("unexpected message %v", err)
			}
			if len(f.users.users) != 0 {
				t.Fatal("no user should be stored when a guard fails")
			}
		})
	}
}

func TestAuthService_Register_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.users.err = errors.New("connection refused")

	_, err := f.auth().Register(context.Background(), validRegistration())
	if err == nil {
		t.Fatal("expected an error")
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		t.Fatalf("storage failure must not map to %s", appErr.Code)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	user := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleAdmin)

	res, err := svc.Login(ctx, ports.LoginInput{Email: "Alice@Example.com", Password: "Password1!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
	want := domain.LoginUser{ID: user.ID, Email: user.Email, Name: "Seed", Role: domain.RoleAdmin}
	if res.User != want {
		t.Fatalf("unexpected projection %+v", res.User)
	}

	claims, err := f.tokens.Verify(ctx, res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)

	_, wrongPassword := svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: "Wrong1!"})
	_, unknownEmail := svc.Login(ctx, ports.LoginInput{Email: "nobody@example.com", Password: "Password1!"})

	var a, b *domain.AppError
	if !errors.As(wrongPassword, &a) || !errors.As(unknownEmail, &b) {
		t.Fatalf("expected AppErrors, got %v / %v", wrongPassword, unknownEmail)
	}
	if *a != *b || a.Code != domain.CodeInvalidCredentials {
		t.Fatalf("expected identical INVALID_CREDENTIALS errors, got %+v / %+v", a, b)
	}
	if kinds := f.sink.kinds(); len(kinds) != 2 || kinds[0] != domain.EventLoginFailure {
		t.Fatalf("unexpected audit events %v", kinds)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newFixture(t).auth()
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "a@b.co"}); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)

	res, err := svc.Login(ctx, ports.LoginInput{Email: "alice@example.com", Password: "Password1!"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, _ := f.tokens.Verify(ctx, res.Token)

	if err := svc.Logout(ctx, res.Token, claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := f.tokens.Verify(ctx, res.Token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected logged out token to be rejected, got %v", err)
	}
}

func TestAuthService_GetProfile_TargetResolution(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	bob := f.seed(t, "bob@example.com", "556", "Password1!", domain.RoleCustomer)
	admin := domain.ClaimsFor(bob)

	// token identity wins over the path parameter
	tgt := ports.SelfTarget(domain.ClaimsFor(alice))
	tgt.Param = "999"
	got, err := svc.GetProfile(ctx, tgt)
	if err != nil || got.ID != alice.ID {
		t.Fatalf("expected alice, got %+v, %v", got, err)
	}

	got, err = svc.GetProfile(ctx, ports.ParamTarget("2", admin))
	if err != nil || got.ID != bob.ID {
		t.Fatalf("expected bob, got %+v, %v", got, err)
	}

	if _, err := svc.GetProfile(ctx, ports.ParamTarget("abc", admin)); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := svc.GetProfile(ctx, ports.ParamTarget("42", admin)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GetProfile(ctx, ports.Target{}); !errors.Is(err, domain.ErrUnauthorizedAccess) {
		t.Fatalf("expected ErrUnauthorizedAccess, got %v", err)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()

	if _, err := svc.ListUsers(ctx); !errors.Is(err, domain.ErrUsersNotFound) {
		t.Fatalf("expected ErrUsersNotFound, got %v", err)
	}

	f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	f.seed(t, "bob@example.com", "556", "Password1!", domain.RoleCustomer)
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestAuthService_UpdateProfile_EmailCollision(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	f.seed(t, "bob@example.com", "556", "Password1!", domain.RoleCustomer)
	self := ports.SelfTarget(domain.ClaimsFor(alice))

	_, err := svc.UpdateProfile(ctx, self, ports.UpdateProfileInput{Email: strptr("bob@example.com")})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	// keeping one's own email is not a collision
	updated, err := svc.UpdateProfile(ctx, self, ports.UpdateProfileInput{
		Email:     strptr("alice@example.com"),
		FirstName: strptr("Alicia"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Alicia" || updated.Email != "alice@example.com" {
		t.Fatalf("unexpected record %+v", updated)
	}
}

func TestAuthService_UpdateProfile_PhoneCollision(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	f.seed(t, "bob@example.com", "556", "Password1!", domain.RoleCustomer)

	_, err := f.auth().UpdateProfile(context.Background(), ports.SelfTarget(domain.ClaimsFor(alice)),
		ports.UpdateProfileInput{Phone: strptr("556")})
	if !errors.Is(err, domain.ErrPhoneAlreadyExists) {
		t.Fatalf("expected ErrPhoneAlreadyExists, got %v", err)
	}
}

func TestAuthService_UpdateProfile_EmptyReturnsCurrent(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)

	got, err := f.auth().UpdateProfile(context.Background(), ports.SelfTarget(domain.ClaimsFor(alice)), ports.UpdateProfileInput{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.ID != alice.ID || got.Email != alice.Email {
		t.Fatalf("unexpected record %+v", got)
	}
	if len(f.sink.kinds()) != 0 {
		t.Fatal("an empty update must not be audited")
	}
}

func TestAuthService_UpdateProfile_Password(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	self := ports.SelfTarget(domain.ClaimsFor(alice))

	if _, err := svc.UpdateProfile(ctx, self, ports.UpdateProfileInput{Password: strptr("weak")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, self, ports.UpdateProfileInput{Password: strptr("NewPass2@")}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if !f.hasher.Verify("NewPass2@", f.users.users[alice.ID].PasswordHash) {
		t.Fatal("password was not re-hashed")
	}
}

func TestAuthService_UpdateProfile_PasswordOverByteLimit(t *testing.T) {
	f := newFixture(t)
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	long := "Aa1!" + strings.Repeat("é", 60)

	_, err := f.auth().UpdateProfile(context.Background(), ports.SelfTarget(domain.ClaimsFor(alice)), ports.UpdateProfileInput{Password: &long})
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if !strings.Contains(appErr.Message, `"password"`) {
		t.Fatalf("message should name the field: %q", appErr.Message)
	}
	if !f.hasher.Verify("Password1!", f.users.users[alice.ID].PasswordHash) {
		t.Fatal("stored password must be unchanged")
	}
}

func TestAuthService_UpdateProfile_Role(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	admin := f.seed(t, "admin@example.com", "556", "Password1!", domain.RoleAdmin)
	manager := domain.RoleManager

	_, err := svc.UpdateProfile(ctx, ports.SelfTarget(domain.ClaimsFor(alice)), ports.UpdateProfileInput{Role: &manager})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected self role change to be rejected, got %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, ports.ParamTarget("1", domain.ClaimsFor(admin)), ports.UpdateProfileInput{Role: &manager})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Role != domain.RoleManager {
		t.Fatalf("expected manager, got %s", updated.Role)
	}

	bogus := domain.Role("root")
	if _, err := svc.UpdateProfile(ctx, ports.ParamTarget("1", domain.ClaimsFor(admin)), ports.UpdateProfileInput{Role: &bogus}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	found := false
	for _, e := range f.sink.events {
		if e.Kind == domain.EventRoleChanged {
			found = e.ActorID == admin.ID && e.UserID == alice.ID
		}
	}
	if !found {
		t.Fatal("expected a role change event attributed to the admin")
	}
}

func TestAuthService_UpdateProfile_RoleChangeRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	mgr := f.seed(t, "manager@example.com", "556", "Password1!", domain.RoleManager)
	admin := domain.RoleAdmin

	tests := []struct {
		name   string
		target ports.Target
	}{
		{"manager on another user", ports.ParamTarget("1", domain.ClaimsFor(mgr))},
		{"manager on own id", ports.ParamTarget("2", domain.ClaimsFor(mgr))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(ctx, tt.target, ports.UpdateProfileInput{Role: &admin})
			if !errors.Is(err, domain.ErrAdminAccessRequired) {
				t.Fatalf("expected ErrAdminAccessRequired, got %v", err)
			}
		})
	}

	if f.users.users[alice.ID].Role != domain.RoleCustomer || f.users.users[mgr.ID].Role != domain.RoleManager {
		t.Fatal("roles must be unchanged")
	}

	// managers can still edit other fields on behalf of a user
	name := "Alicia"
	updated, err := svc.UpdateProfile(ctx, ports.ParamTarget("1", domain.ClaimsFor(mgr)), ports.UpdateProfileInput{FirstName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Alicia" {
		t.Fatalf("unexpected first name %q", updated.FirstName)
	}
}

func TestAuthService_UpdateProfile_Missing(t *testing.T) {
	f := newFixture(t)
	admin := f.seed(t, "admin@example.com", "556", "Password1!", domain.RoleAdmin)

	_, err := f.auth().UpdateProfile(context.Background(), ports.ParamTarget("77", domain.ClaimsFor(admin)),
		ports.UpdateProfileInput{FirstName: strptr("X")})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_DeleteProfile(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	alice := f.seed(t, "alice@example.com", "555", "Password1!", domain.RoleCustomer)
	self := ports.SelfTarget(domain.ClaimsFor(alice))

	snapshot, err := svc.DeleteProfile(ctx, self)
	if err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if snapshot.ID != alice.ID || snapshot.Email != alice.Email {
		t.Fatalf("expected pre-deletion snapshot, got %+v", snapshot)
	}
	if _, ok := f.users.users[alice.ID]; ok {
		t.Fatal("user still stored")
	}
	if _, err := svc.DeleteProfile(ctx, self); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
