package api

import (
	"errors"
	"net/http"

	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
)

// Error is the body of an error envelope: {"error":{"code":...,"message":...}}.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes returned by the API.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnavailable      = "UNAVAILABLE"
)

func newError(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

var (
	ErrNotFound              = newError(http.StatusNotFound, ErrCodeNotFound, "Resource not found")
	ErrProjectNotFound       = newError(http.StatusNotFound, ErrCodeNotFound, "Project not found")
	ErrPostNotFound          = newError(http.StatusNotFound, ErrCodeNotFound, "Post not found")
	ErrInternalServer        = newError(http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
	ErrNewsletterUnavailable = newError(http.StatusServiceUnavailable, ErrCodeUnavailable, "Newsletter signups are not available")
)

// NewBadRequest reports a malformed request.
func NewBadRequest(message string) *Error {
	return newError(http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NewValidationError reports a well-formed request with invalid values.
func NewValidationError(message string) *Error {
	return newError(http.StatusBadRequest, ErrCodeValidationFailed, message)
}

// NewConflict reports a write that collides with existing state.
func NewConflict(message string) *Error {
	return newError(http.StatusConflict, ErrCodeConflict, message)
}

// fromServiceError translates errors returned by the service packages.
// Unknown errors become ErrInternalServer and ok is false, so the caller
// knows to log them.
func fromServiceError(err error) (apiErr *Error, ok bool) {
	switch {
	case errors.Is(err, newsletter.ErrInvalidEmail):
		return NewValidationError(err.Error()), true
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		return NewConflict(err.Error()), true
	default:
		return ErrInternalServer, false
	}
}
