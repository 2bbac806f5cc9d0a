package domain

import "time"

// Role is the access level carried by a user and by the claims of every token
// issued to them.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether r may use admin-gated routes.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

// User models a registered account. PasswordHash never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser carries the columns written on registration.
type NewUser struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
}

// UserUpdate is a partial update: nil fields are left untouched.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	PasswordHash *string
	Role         *Role
}

// Empty reports whether the update requests no change at all.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil &&
		u.LastName == nil &&
		u.Email == nil &&
		u.Phone == nil &&
		u.PasswordHash == nil &&
		u.Role == nil
}

// LoginUser is the minimal projection returned alongside a login token.
type LoginUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Projection returns the login view of u.
func (u *User) Projection() LoginUser {
	return LoginUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.FirstName,
		Role:  u.Role,
	}
}
