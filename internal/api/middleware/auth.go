package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storely/catalog-api/internal/api/metrics"
	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/ports"
	"github.com/storely/catalog-api/internal/core/token"
)

// Context keys populated by Authenticate for downstream handlers.
const (
	ContextKeyUser = "user"
	ContextKeyRole = "role"
)

// Authenticate resolves the bearer token to a live user and injects it into
// context. A token whose subject no longer exists in the store is rejected
// the same way as an invalid token: downstream code never observes an empty
// identity.
func Authenticate(tokens *token.Manager, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "no token")
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token failed")
			}

			user, err := users.FindByID(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token failed")
				}
				return err
			}

			c.Set(ContextKeyUser, user.Sanitized())
			c.Set(ContextKeyRole, user.Role)

			return next(c)
		}
	}
}
