package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storefront/storefront-api/internal/core/domain"
)

const addressColumns = `id, user_id, address_type, street_address, city, state, postal_code, country, created_at`

// AddressRepository implements ports.AddressRepository on PostgreSQL.
type AddressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddress(s rowScanner) (*domain.Address, error) {
	var (
		a   domain.Address
		typ string
	)
	if err := s.Scan(&a.ID, &a.UserID, &typ, &a.Street, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Type = domain.AddressType(typ)
	return &a, nil
}

func (r *AddressRepository) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	query := `INSERT INTO user_addresses (user_id, address_type, street_address, city, state, postal_code, country)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + addressColumns
	created, err := scanAddress(r.db.QueryRowContext(ctx, query,
		a.UserID, string(a.Type), a.Street, a.City, a.State, a.PostalCode, a.Country))
	if err != nil {
		return nil, fmt.Errorf("AddressRepository.Create: %w", err)
	}
	return created, nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM user_addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("AddressRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("AddressRepository.ListByUser: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("AddressRepository.ListByUser: %w", err)
	}
	return out, nil
}

func (r *AddressRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_addresses WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("AddressRepository.CountByUser: %w", err)
	}
	return n, nil
}

func (r *AddressRepository) DeleteOwned(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("AddressRepository.DeleteOwned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("AddressRepository.DeleteOwned: %w", err)
	}
	return n > 0, nil
}
