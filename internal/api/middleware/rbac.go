package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole permits the request only when the authenticated identity's
// role belongs to the allow-set. Must run after Authenticate.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if role == "" {
				// Authenticate did not run for this route.
				return echo.NewHTTPError(http.StatusUnauthorized, "no token")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("role %s not authorized", role))
			}
			return next(c)
		}
	}
}
