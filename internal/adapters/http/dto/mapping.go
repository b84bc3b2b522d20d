package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
)

// MapDomainError maps an error to a status code and envelope. This is the
// only place outcome kinds become HTTP statuses. Unknown errors map to 500
// with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
		empty      *domain.EmptyCollectionError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, NewErrorResponse(
			ErrorCodeNotFound,
			cases.Title(language.English).String(notFound.Entity)+" not found",
		)

	case errors.As(err, &validation):
		details := make(map[string]string, len(validation.Fields))
		for _, f := range validation.Fields {
			details[f] = validation.Message
		}

		return http.StatusBadRequest, NewErrorResponse(
			ErrorCodeValidation,
			validationMessage(validation),
		).WithDetails(details)

	case errors.As(err, &empty):
		return http.StatusNotFound, NewErrorResponse(
			ErrorCodeEmptyCollection,
			fmt.Sprintf("No %s available", empty.Entity),
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"service temporarily unavailable",
		)

	case errors.Is(err, ErrBinding):
		return http.StatusBadRequest, NewErrorResponse(
			ErrorCodeBadRequest,
			"request could not be decoded",
		)

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// validationMessage names the offending fields. Presence failures read the
// way API clients have always seen them: "Both 'text' and 'author' are required".
func validationMessage(e *domain.ValidationError) string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = "'" + f + "'"
	}

	if e.Message != "is required" {
		if len(quoted) == 0 {
			return e.Message
		}

		return strings.Join(quoted, ", ") + " " + e.Message
	}

	switch len(quoted) {
	case 0:
		return "Request is invalid"
	case 1:
		return quoted[0] + " is required"
	case 2:
		return "Both " + quoted[0] + " and " + quoted[1] + " are required"
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1] + " are required"
	}
}

// HandleError writes the envelope for err, including the active trace
// id. 5xx responses are logged with the underlying error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.WithTraceID(TraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	c.JSON(status, resp)
}
