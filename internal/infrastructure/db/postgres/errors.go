package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storefront/storefront-api/internal/core/domain"
)

const uniqueViolation = "23505"

// constraint name -> error reported to callers
var uniqueConstraints = map[string]error{
	"users_email_key": domain.ErrEmailAlreadyExists,
	"users_phone_key": domain.ErrPhoneAlreadyExists,
}

// translateUniqueViolation maps a unique-constraint failure on a known
// constraint to its domain error, or returns nil.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	return uniqueConstraints[pgErr.ConstraintName]
}
