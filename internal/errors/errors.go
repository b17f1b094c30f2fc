// Package errors provides the structured error types shared across the
// HTTP surface: APIError for service-level failures and RFC 7807
// ProblemDetails for wire responses.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrMissingParameter = New(http.StatusBadRequest, "MISSING_PARAMETER", "Required parameter is missing")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrAnalyticsDown    = New(http.StatusBadGateway, "ANALYTICS_UNAVAILABLE", "Analytics service is unavailable")
)

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", map[string]string{
		"field":   field,
		"message": message,
	})
}

// FileValidationError wraps a file-kind rejection from the gatekeeper.
// UNSUPPORTED_FORMAT and EMPTY_FILE map to 400; FILE_TOO_LARGE maps to
// 413 so clients can distinguish a size problem from a content problem.
func FileValidationError(code, message string) *APIError {
	status := http.StatusBadRequest
	if code == "FILE_TOO_LARGE" {
		status = http.StatusRequestEntityTooLarge
	}
	return New(status, code, message)
}

// AnalyticsError wraps a failure talking to the downstream analytics
// service.
func AnalyticsError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "ANALYTICS_UNAVAILABLE",
		"Failed to forward file to the analytics service", err.Error())
}

// NotFoundError creates a not found error with the resource name.
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), resource)
}
