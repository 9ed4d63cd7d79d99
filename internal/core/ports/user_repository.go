package ports

import (
	"context"

	"github.com/steelcraft/erp-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Emails are stored lowercase; a unique index on email is the authoritative
// duplicate guard (FindByEmail pre-checks are a convenience only).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update overwrites the stored fields of the user identified by user.ID
	// and returns the persisted record.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
