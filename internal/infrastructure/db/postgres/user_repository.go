package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/storefront/storefront-api/internal/core/domain"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, role, created_at, updated_at`

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) findOne(ctx context.Context, op, query string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UserRepository.%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail",
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "FindByPhone",
		`SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "FindByID",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmailExcludingID(ctx context.Context, email string, excludeID int64) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmailExcludingID",
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND id <> $2`, email, excludeID)
}

func (r *UserRepository) FindByPhoneExcludingID(ctx context.Context, phone string, excludeID int64) (*domain.User, error) {
	return r.findOne(ctx, "FindByPhoneExcludingID",
		`SELECT `+userColumns+` FROM users WHERE phone = $1 AND id <> $2`, phone, excludeID)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("UserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("UserRepository.List: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UserRepository.List: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, nu domain.NewUser) (int64, error) {
	query := `INSERT INTO users (first_name, last_name, email, phone, password_hash)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		nu.FirstName, nu.LastName, nu.Email, nu.Phone, nu.PasswordHash,
	).Scan(&id)
	if err != nil {
		if domainErr := translateUniqueViolation(err); domainErr != nil {
			return 0, domainErr
		}
		return 0, fmt.Errorf("UserRepository.Create: %w", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if upd.Empty() {
		return r.FindByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.FirstName != nil {
		set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		set("last_name", *upd.LastName)
	}
	if upd.Email != nil {
		set("email", *upd.Email)
	}
	if upd.Phone != nil {
		set("phone", *upd.Phone)
	}
	if upd.PasswordHash != nil {
		set("password_hash", *upd.PasswordHash)
	}
	if upd.Role != nil {
		set("role", string(*upd.Role))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		if domainErr := translateUniqueViolation(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("UserRepository.Update: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("UserRepository.Delete: %w", err)
	}
	return nil
}
