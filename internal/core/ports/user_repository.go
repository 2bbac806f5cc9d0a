package ports

import (
	"context"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// UserRepository is the persistence gateway for user accounts. Lookups return
// (nil, nil) when no row matches; errors are reserved for storage failures.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByEmailExcludingID ignores the row identified by excludeID so a user
	// keeping their own email is not reported as a conflict.
	FindByEmailExcludingID(ctx context.Context, email string, excludeID int64) (*domain.User, error)
	FindByPhoneExcludingID(ctx context.Context, phone string, excludeID int64) (*domain.User, error)

	List(ctx context.Context) ([]domain.User, error)

	// Create inserts the user with the customer role and returns its ID.
	// Unique violations surface as ErrEmailAlreadyExists or ErrPhoneAlreadyExists.
	Create(ctx context.Context, user domain.NewUser) (int64, error)

	// Update applies only the non-nil fields of upd and returns the stored
	// record. An empty update re-reads the current row. Returns (nil, nil)
	// when the user no longer exists.
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)

	// Delete removes the user; deleting an absent ID is not an error.
	Delete(ctx context.Context, id int64) error
}

// AddressRepository persists shipping addresses owned by a user.
type AddressRepository interface {
	Create(ctx context.Context, addr domain.Address) (*domain.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Address, error)
	CountByUser(ctx context.Context, userID int64) (int, error)

	// DeleteOwned removes the address only when it belongs to userID and
	// reports whether a row was removed.
	DeleteOwned(ctx context.Context, id, userID int64) (bool, error)
}
