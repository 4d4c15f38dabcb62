package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

type PermissionHandler struct {
	permissionService ports.PermissionService
}

func NewPermissionHandler(permissionService ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

type permissionRequest struct {
	Name string `json:"name" validate:"required,min=2,max=64"`
}

type permissionListResponse struct {
	Data  []domain.Permission `json:"data"`
	Total int64               `json:"total"`
}

// Create adds a new permission.
//
// @Summary      Create a permission
// @Tags         permission
// @Accept       json
// @Produce      json
// @Param        body  body      permissionRequest  true  "Permission name"
// @Success      201   {object}  domain.Permission
// @Failure      400   {object}  map[string]string
// @Router       /permission [post]
func (h *PermissionHandler) Create(c echo.Context) error {
	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	perm, err := h.permissionService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, perm)
}

// List returns a page of permissions.
//
// @Summary      List permissions
// @Tags         permission
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        search  query     string  false  "Filter by name"
// @Success      200     {object}  permissionListResponse
// @Router       /permission [get]
func (h *PermissionHandler) List(c echo.Context) error {
	perms, total, err := h.permissionService.List(c.Request().Context(), listParams(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, permissionListResponse{Data: perms, Total: total})
}

// Get returns a single permission with its linked roles.
//
// @Summary      Get a permission
// @Tags         permission
// @Produce      json
// @Param        id   path      string  true  "Permission id"
// @Success      200  {object}  domain.Permission
// @Failure      404  {object}  map[string]string
// @Router       /permission/{id} [get]
func (h *PermissionHandler) Get(c echo.Context) error {
	perm, err := h.permissionService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perm)
}

// Update renames a permission.
//
// @Summary      Update a permission
// @Tags         permission
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Permission id"
// @Param        body  body      permissionRequest  true  "New name"
// @Success      200   {object}  domain.Permission
// @Failure      404   {object}  map[string]string
// @Router       /permission/{id} [patch]
func (h *PermissionHandler) Update(c echo.Context) error {
	var req permissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	perm, err := h.permissionService.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, perm)
}

// Delete removes a permission after clearing its role links.
//
// @Summary      Delete a permission
// @Tags         permission
// @Produce      json
// @Param        id   path      string  true  "Permission id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /permission/{id} [delete]
func (h *PermissionHandler) Delete(c echo.Context) error {
	if err := h.permissionService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "permission deleted"})
}
