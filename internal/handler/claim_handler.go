package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lostfound/internal/auth"
	"lostfound/internal/service"
)

// ClaimHandler handles claim endpoints.
type ClaimHandler struct {
	claimService service.ClaimService
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Submit godoc
// @Summary Submit a claim against an item
// @Tags claims
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param itemId formData string true "Item ID"
// @Param message formData string true "Why the item is yours"
// @Param proofImage formData file false "Proof image"
// @Success 201 {object} model.Claim
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /claims [post]
func (h *ClaimHandler) Submit(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	itemID, err := uuid.Parse(c.FormValue("itemId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}

	proof, closeProof, err := formImage(c, "proofImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid proof image upload")
	}
	defer closeProof()

	claim, err := h.claimService.Submit(c.Request().Context(), identity, itemID, c.FormValue("message"), proof)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, claim)
}

// Approve godoc
// @Summary Approve a claim on an owned item
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /claims/{id}/approve [put]
func (h *ClaimHandler) Approve(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.claimService.Approve(c.Request().Context(), identity, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "claim approved successfully"})
}

// Reject godoc
// @Summary Reject a claim on an owned item
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /claims/{id}/reject [put]
func (h *ClaimHandler) Reject(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.claimService.Reject(c.Request().Context(), identity, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "claim rejected successfully"})
}

// MyItemClaims godoc
// @Summary List claims against the caller's items
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Claim
// @Failure 401 {object} errors.ErrorResponse
// @Router /claims/my-items [get]
func (h *ClaimHandler) MyItemClaims(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	claims, err := h.claimService.ListForOwnedItems(c.Request().Context(), identity)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, claims)
}
