package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/password"
	"github.com/storely/catalog-api/internal/core/ports"
	"github.com/storely/catalog-api/internal/core/token"
)

// LoginLimiter throttles login attempts per email (Redis-backed in
// production, stubbed in tests). A nil limiter disables throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	hasher  *password.Hasher
	tokens  *token.Manager
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *password.Hasher, tokens *token.Manager, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

// Register creates an account. Role is caller-suppliable and defaults to
// "user"; unknown role strings are rejected.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	sanitized := created.Sanitized()
	return &sanitized, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || pass == "" {
		return "", domain.ErrInvalidInput
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Throttling degrades open: a limiter outage must not lock
			// everyone out.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if !allowed {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return signed, nil
}
