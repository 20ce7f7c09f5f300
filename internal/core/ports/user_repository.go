package ports

import (
	"context"

	"github.com/storely/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations enforce email uniqueness and return domain.ErrEmailTaken
// on a duplicate insert.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the user including the password hash; it exists
	// for the login path only.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
