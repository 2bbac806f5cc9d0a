package domain

// Claims is the identity embedded in a signed token and handed to every
// protected operation after the token gate has verified it.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// ClaimsFor builds the token identity of u.
func ClaimsFor(u *User) Claims {
	return Claims{UserID: u.ID, Email: u.Email, Role: u.Role}
}
