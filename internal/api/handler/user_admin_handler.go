package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

type UserAdminHandler struct {
	users ports.UserAdminService
}

func NewUserAdminHandler(users ports.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer supplier admin"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// List returns a page of accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *UserAdminHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	users, err := h.users.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single account.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *UserAdminHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update patches an account. Role changes take effect on the user's next
// token issue, or immediately on routes resolved against the store.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id} [put]
func (h *UserAdminHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: req.IsActive,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes an account.
//
// @Summary      Delete a user
// @Tags         admin
// @Param        id  path  string  true  "User ID"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
