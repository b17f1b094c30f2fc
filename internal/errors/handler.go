package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"dataniaga/internal/ingest"
)

// ErrorHandler provides centralized error handling for the HTTP surface.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler. includeStack adds stack
// traces to responses and should only be true in development.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", string(debug.Stack()))
	}
	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	// Gatekeeper rejections carry their own code and map to dedicated
	// problem types so the UI can show a precise single message.
	var fileErr *ingest.FileError
	if errors.As(err, &fileErr) {
		return fileProblem(fileErr, r)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing your request",
		r.URL.Path,
	)
}

func fileProblem(fileErr *ingest.FileError, r *http.Request) *ProblemDetails {
	switch fileErr.Code {
	case ingest.CodeEmptyFile:
		return NewProblemDetails(http.StatusBadRequest, TypeFileEmpty,
			"Empty File", fileErr.Message, r.URL.Path)
	case ingest.CodeFileTooLarge:
		return NewProblemDetails(http.StatusRequestEntityTooLarge, TypeFileTooLarge,
			"File Too Large", fileErr.Message, r.URL.Path)
	default:
		return NewProblemDetails(http.StatusBadRequest, TypeFileUnsupported,
			"Unsupported File Format", fileErr.Message, r.URL.Path)
	}
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST", "MISSING_PARAMETER":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	case "FILE_TOO_LARGE":
		problemType = TypeFileTooLarge
	case "UNSUPPORTED_FORMAT":
		problemType = TypeFileUnsupported
	case "EMPTY_FILE":
		problemType = TypeFileEmpty
	case "ANALYTICS_UNAVAILABLE":
		problemType = TypeAnalyticsDown
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// HandlePanic recovers from panics and returns an RFC 7807 error.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())))

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
	}
	render.Render(w, r, problem)
}

// NotFound returns a standard 404 problem.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))
	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 problem.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeInternal,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))
	render.Render(w, r, problem)
}
