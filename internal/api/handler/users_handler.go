package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/markethub/admin-gateway/internal/api/middleware"
	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// UsersHandler serves the user-management pages. Every route carries a
// :role parameter validated by the route middleware before these methods
// run, and the guard has already granted user-management access.
type UsersHandler struct {
	directory ports.DirectoryService
}

func NewUsersHandler(directory ports.DirectoryService) *UsersHandler {
	return &UsersHandler{directory: directory}
}

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

type userListResponse struct {
	Role  domain.Role   `json:"role"`
	Label string        `json:"label"`
	Users []domain.User `json:"users"`
}

// List returns all users of the requested role.
//
// @Summary      List users by role
// @Tags         users
// @Produce      json
// @Param        role  path      string  true  "Managed role"  Enums(buyer, seller, manager, admin)
// @Success      200   {object}  userListResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /dashboard/users/{role} [get]
func (h *UsersHandler) List(c echo.Context) error {
	_, token, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := middleware.RoleParam(c)

	users, err := h.directory.List(c.Request().Context(), token, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{
		Role:  role,
		Label: role.Label(),
		Users: users,
	})
}

// Get returns a single managed user.
//
// @Summary      Get one user
// @Tags         users
// @Produce      json
// @Param        role  path      string  true  "Managed role"
// @Param        id    path      string  true  "User ID"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  map[string]string
// @Router       /dashboard/users/{role}/{id} [get]
func (h *UsersHandler) Get(c echo.Context) error {
	_, token, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := middleware.RoleParam(c)

	user, err := h.directory.Get(c.Request().Context(), token, role, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds a managed user of the requested role.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        role  path      string             true  "Managed role"
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /dashboard/users/{role} [post]
func (h *UsersHandler) Create(c echo.Context) error {
	_, token, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := middleware.RoleParam(c)

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.directory.Create(c.Request().Context(), token, role, ports.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update edits a managed user. A blank password field means "leave the
// password alone" and is stripped before the upstream call.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        role  path      string             true  "Managed role"
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /dashboard/users/{role}/{id} [put]
func (h *UsersHandler) Update(c echo.Context) error {
	_, token, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := middleware.RoleParam(c)

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.directory.Update(c.Request().Context(), token, role, c.Param("id"), ports.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  strings.TrimSpace(req.Password),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes a managed user.
//
// @Summary      Delete user
// @Tags         users
// @Param        role  path  string  true  "Managed role"
// @Param        id    path  string  true  "User ID"
// @Success      204
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /dashboard/users/{role}/{id} [delete]
func (h *UsersHandler) Delete(c echo.Context) error {
	_, token, err := ctxSession(c)
	if err != nil {
		return err
	}
	role := middleware.RoleParam(c)

	if err := h.directory.Delete(c.Request().Context(), token, role, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
