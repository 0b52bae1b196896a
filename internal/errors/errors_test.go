package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err          error
		expectedCode int
		expectedTag  string
	}{
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrMissingFields, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrPasswordTooShort, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrInvalidRole, http.StatusBadRequest, "VALIDATION_ERROR"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
		{ErrClaimNotFound, http.StatusNotFound, "CLAIM_NOT_FOUND"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrItemUnavailable, http.StatusBadRequest, "ITEM_UNAVAILABLE"},
		{ErrSelfClaim, http.StatusBadRequest, "SELF_CLAIM_FORBIDDEN"},
		{ErrDuplicateClaim, http.StatusBadRequest, "DUPLICATE_CLAIM"},
		{ErrProtectedAccount, http.StatusForbidden, "PROTECTED_ACCOUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedTag, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedCode, httpErr.StatusCode)
			assert.Equal(t, tt.expectedTag, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("submit claim: %w", ErrDuplicateClaim)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "DUPLICATE_CLAIM", httpErr.Code)
}

func TestMapErrorToHTTP_UnknownError(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	// Internal detail must not cross the boundary.
	assert.Equal(t, "internal server error", httpErr.Message)
}
