package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lostfound/internal/service"
)

// AdminHandler handles admin-only endpoints. Role enforcement happens in the
// guard middleware; handlers here never re-check roles.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SetRoleRequest represents a role change request.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// ListItems godoc
// @Summary List all items with claim counts and poster contact info
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ItemWithClaims
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/items [get]
func (h *AdminHandler) ListItems(c echo.Context) error {
	items, err := h.adminService.ListAllItems(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListUsers godoc
// @Summary List all users with activity counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.UserSummary
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListAllUsers(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteItem godoc
// @Summary Delete any item and its claims
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/items/{id} [delete]
func (h *AdminHandler) DeleteItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteItem(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted successfully"})
}

// DeleteUser godoc
// @Summary Delete a user and all their items and claims
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted successfully"})
}

// SetRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body SetRoleRequest true "New role"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) SetRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminService.SetRole(c.Request().Context(), id, req.Role); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user role updated to " + req.Role})
}
