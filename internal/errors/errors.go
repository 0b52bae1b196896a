package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("user already exists with this email")
	// ErrMissingFields is returned when required input fields are empty.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	// ErrInvalidRole is returned when a role value is not user or admin.
	ErrInvalidRole = errors.New("role must be 'user' or 'admin'")
	// ErrUserNotFound is returned when a user lookup finds no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrItemNotFound is returned when an item lookup finds no row.
	ErrItemNotFound = errors.New("item not found")
	// ErrClaimNotFound is returned when a claim lookup finds no row.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrForbidden is returned when the caller lacks rights to the resource.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrItemUnavailable is returned when claiming an item that is not active.
	ErrItemUnavailable = errors.New("item is no longer available for claims")
	// ErrSelfClaim is returned when a user claims their own item.
	ErrSelfClaim = errors.New("cannot claim your own item")
	// ErrDuplicateClaim is returned on a second claim for the same item by the same user.
	ErrDuplicateClaim = errors.New("claim already submitted for this item")
	// ErrProtectedAccount is returned when mutating the bootstrap admin account.
	ErrProtectedAccount = errors.New("cannot modify the main admin account")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// reported as an internal error without leaking detail across the boundary.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrClaimNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLAIM_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrItemUnavailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ITEM_UNAVAILABLE")
	case errors.Is(err, ErrSelfClaim):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_CLAIM_FORBIDDEN")
	case errors.Is(err, ErrDuplicateClaim):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_CLAIM")
	case errors.Is(err, ErrProtectedAccount):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PROTECTED_ACCOUNT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
