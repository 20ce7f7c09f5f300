package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storely/catalog-api/internal/api/middleware"
	"github.com/storely/catalog-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Authenticate middleware.
// A missing identity means the middleware did not run for this route; the
// request is rejected rather than observed with an empty user.
func currentUser(c echo.Context) (domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(domain.User)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
