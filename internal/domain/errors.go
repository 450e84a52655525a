package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-specific errors mapped to HTTP responses by the handler layer
var (
	// ErrLinkNotFound is returned when a short code or link id doesn't exist
	ErrLinkNotFound = errors.New("link not found")

	// ErrLinkUnavailable is the parent of the inactive and expired cases
	ErrLinkUnavailable = errors.New("link unavailable")

	// ErrLinkInactive is returned when the owner deactivated the link
	ErrLinkInactive = fmt.Errorf("%w: link inactive", ErrLinkUnavailable)

	// ErrLinkExpired is returned when the link's expiry is in the past
	ErrLinkExpired = fmt.Errorf("%w: link expired", ErrLinkUnavailable)

	// ErrAccessDenied is returned when a user asks for another user's link
	ErrAccessDenied = errors.New("access denied")

	// ErrUnauthorized is returned when no user identity is attached to the request
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidLinkID is returned when a link id path parameter is malformed
	ErrInvalidLinkID = errors.New("invalid link id")

	// ErrShortCodeTaken is returned when a short code is already in use
	ErrShortCodeTaken = errors.New("short code already exists")

	// ErrRateLimitExceeded is returned when rate limit is hit
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for better debugging
type AppError struct {
	Err        error  // Original error
	Message    string // User-friendly message
	StatusCode int    // HTTP status code
	Internal   bool   // Whether to log as internal error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error with context
func NewAppError(err error, message string, statusCode int, internal bool) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// NewInternalError creates a 500 internal server error
func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "Internal server error occurred",
		StatusCode: http.StatusInternalServerError,
		Internal:   true,
	}
}

// StatusCode maps any error to the HTTP status the API answers with
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.StatusCode
	case errors.Is(err, ErrLinkNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrLinkUnavailable):
		return http.StatusGone
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidLinkID):
		return http.StatusBadRequest
	case errors.Is(err, ErrShortCodeTaken):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
