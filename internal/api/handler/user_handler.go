package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storely/catalog-api/internal/core/domain"
	"github.com/storely/catalog-api/internal/core/ports"
)

// UserHandler exposes the account read surface.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type meResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type listUsersResponse struct {
	Message string        `json:"message"`
	Count   int           `json:"count"`
	Users   []domain.User `json:"users"`
}

// Me returns the authenticated user's own account.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Message: "current user", User: user})
}

// List returns every account with a count. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Message: "users retrieved",
		Count:   len(users),
		Users:   users,
	})
}
