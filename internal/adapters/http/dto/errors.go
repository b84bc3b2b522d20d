// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ErrorResponse is the error envelope for every failed request. Error is
// the human-readable message; Code is stable for programmatic use.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
	TraceID string            `json:"traceId,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeBadRequest      = "BAD_REQUEST"
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeRouteNotFound   = "ROUTE_NOT_FOUND"
	ErrorCodeEmptyCollection = "EMPTY_COLLECTION"
	ErrorCodeRateLimited     = "RATE_LIMITED"
	ErrorCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout         = "TIMEOUT"
	ErrorCodeInternal        = "INTERNAL_ERROR"
)

// NewErrorResponse creates an error envelope.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code}
}

// WithDetails attaches per-field details.
func (e *ErrorResponse) WithDetails(details map[string]string) *ErrorResponse {
	if len(details) > 0 {
		e.Details = details
	}

	return e
}

// WithTraceID attaches a trace id.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeBadRequest, ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeNotFound, ErrorCodeRouteNotFound, ErrorCodeEmptyCollection:
		return http.StatusNotFound
	case ErrorCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrorCodeUnavailable, ErrorCodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// TraceID returns the id of the span active on the request, or "".
func TraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// Abort writes the envelope for code and stops the handler chain.
func Abort(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(TraceID(c)))
}
