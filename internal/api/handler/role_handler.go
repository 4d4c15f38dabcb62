package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type roleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

type setPermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

type roleListResponse struct {
	Data  []domain.Role `json:"data"`
	Total int64         `json:"total"`
}

// Create adds a new role. Creating a second role with the reserved admin
// name is rejected.
//
// @Summary      Create a role
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        body  body      roleRequest  true  "Role name"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Router       /role [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

// List returns a page of roles.
//
// @Summary      List roles
// @Tags         role
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Filter by name"
// @Success      200     {object}  roleListResponse
// @Router       /role [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, total, err := h.roleService.List(c.Request().Context(), listParams(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleListResponse{Data: roles, Total: total})
}

// Get returns a single role with its users and permissions.
//
// @Summary      Get a role
// @Tags         role
// @Produce      json
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  domain.Role
// @Failure      404  {object}  map[string]string
// @Router       /role/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roleService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Update renames a role.
//
// @Summary      Update a role
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Role id"
// @Param        body  body      roleRequest  true  "New name"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  map[string]string
// @Router       /role/{id} [patch]
func (h *RoleHandler) Update(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role after clearing its relations. Linked users and
// permissions stay intact.
//
// @Summary      Delete a role
// @Tags         role
// @Produce      json
// @Param        id   path      string  true  "Role id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /role/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.roleService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "role deleted"})
}

// SetPermissions links the named permissions to a role as a set union.
//
// @Summary      Assign permissions to a role
// @Tags         role
// @Accept       json
// @Produce      json
// @Param        name  path      string                 true  "Role name"
// @Param        body  body      setPermissionsRequest  true  "Permission names"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  map[string]string
// @Router       /role/set-permissions/{name} [post]
func (h *RoleHandler) SetPermissions(c echo.Context) error {
	var req setPermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.SetPermissions(c.Request().Context(), c.Param("name"), req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}
