package ports

import (
	"context"

	"github.com/storely/catalog-api/internal/core/domain"
)

// UserService exposes read operations over accounts.
type UserService interface {
	// List returns every account, password hashes cleared.
	List(ctx context.Context) ([]domain.User, error)
}
