package acl

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/domain"
)

// maxErrorBody caps how much of an error body is read.
const maxErrorBody = 64 << 10

// ErrorResponse is the union of the error bodies the adapters understand:
// the quote API envelope {"error","code","details"} and OpenWeatherMap's
// {"cod","message"}.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// GetMessage prefers the quote API field, then the provider message.
func (e *ErrorResponse) GetMessage() string {
	if e.Error != "" {
		return e.Error
	}

	return e.Message
}

// ExternalCodeEmptyCollection marks a 404 caused by an empty collection.
const ExternalCodeEmptyCollection = "EMPTY_COLLECTION"

// ParseErrorResponse decodes an error body. It returns nil when the body is
// missing, not JSON, or carries no message or code.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var resp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&resp); err != nil {
		return nil
	}

	if resp.Code == "" && resp.GetMessage() == "" {
		return nil
	}

	return &resp
}

// Target names what a request was about, for error context.
type Target struct {
	Service string
	Entity  string
	ID      string
}

// MapHTTPError maps a failed exchange to a domain error. clientErr takes
// precedence; otherwise resp must be a non-2xx response whose body has not
// been read.
func MapHTTPError(resp *http.Response, clientErr error, target Target) error {
	if clientErr != nil {
		return mapClientError(clientErr, target.Service)
	}

	if resp == nil {
		return domain.NewUnavailableError(target.Service, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return mapStatusCode(resp.StatusCode, ParseErrorResponse(resp.Body), target)
}

func mapClientError(err error, service string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, "circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(service, err.Error())
	default:
		return domain.NewUnavailableError(service, "request failed: "+err.Error())
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, target Target) error {
	message := http.StatusText(status)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch {
	case status == http.StatusNotFound:
		if errResp != nil && errResp.Code == ExternalCodeEmptyCollection {
			return domain.NewEmptyCollectionError(target.Entity)
		}

		return domain.NewNotFoundError(target.Entity, target.ID)

	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		var fields []string
		if errResp != nil {
			fields = slices.Sorted(maps.Keys(errResp.Details))
		}

		return domain.NewValidationError(message, fields...)

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewUnavailableError(target.Service, "credentials rejected")

	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(target.Service, "rate limit exceeded")

	case status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(target.Service, message)

	default:
		return domain.NewUnavailableError(target.Service, "unexpected status "+strconv.Itoa(status))
	}
}
