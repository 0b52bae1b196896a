package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lostfound/internal/auth"
	"lostfound/internal/service"
)

// ItemHandler handles item endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// List godoc
// @Summary List all items, newest first
// @Tags items
// @Produce json
// @Success 200 {array} model.Item
// @Failure 500 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.itemService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a single item with poster details
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} model.Item
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Post a new item
// @Tags items
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param location formData string true "Location"
// @Param image formData file false "Item image"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	image, closeImage, err := formImage(c, "image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer closeImage()

	item, err := h.itemService.Create(
		c.Request().Context(),
		identity,
		c.FormValue("title"),
		c.FormValue("description"),
		c.FormValue("location"),
		image,
	)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Mine godoc
// @Summary List the caller's items with claim counts
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ItemWithClaims
// @Failure 401 {object} errors.ErrorResponse
// @Router /items/mine [get]
func (h *ItemHandler) Mine(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	items, err := h.itemService.ListByOwner(c.Request().Context(), identity)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Delete godoc
// @Summary Delete an owned item and its claims
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.itemService.Delete(c.Request().Context(), identity, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted successfully"})
}

// parseID parses the :id route parameter. Malformed IDs cannot reference
// anything, so they report not found.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, nil
}

// formImage extracts an optional multipart file field. The returned closer is
// always safe to defer.
func formImage(c echo.Context, field string) (*service.ImageUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent file is not an error; the field is optional.
		return nil, func() {}, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      src,
	}
	return upload, func() { _ = src.Close() }, nil
}
