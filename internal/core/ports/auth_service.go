package ports

import (
	"context"

	"github.com/storely/catalog-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
// Role is optional and defaults to "user".
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token. Unknown email and wrong password
	// fail identically with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}
