package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quote-api/internal/domain"
)

// ErrBinding indicates the body or query string could not be decoded.
var ErrBinding = errors.New("binding failed")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors follow the
// json tag, falling back to the form tag for query structs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}

				if name != "" {
					return name
				}
			}

			return fld.Name
		})
	})

	return validate
}

// BindJSON decodes the JSON body into v and validates it. Decode failures
// wrap ErrBinding; rule failures are returned as a *domain.ValidationError.
func BindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return validateStruct(v)
}

// BindQuery decodes the query string into v and validates it.
func BindQuery(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return validateStruct(v)
}

func validateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	return toDomainError(fieldErrs)
}

// toDomainError folds validator failures into one domain error. Presence
// failures are reported together, matching what the store itself reports
// for blank input; otherwise the first rule failure is reported.
func toDomainError(fieldErrs validator.ValidationErrors) error {
	missing := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		if !strings.HasPrefix(fe.Tag(), "required") {
			return domain.NewValidationError(fieldMessage(fe), fe.Field())
		}

		missing = append(missing, fe.Field())
	}

	return domain.NewValidationError("is required", missing...)
}

var validationMessages = map[string]string{
	"required":             "is required",
	"required_without":     "is required unless {param} is given",
	"required_without_all": "is required unless {param} are given",
	"min":                  "must be at least {param}",
	"max":                  "must be at most {param}",
	"oneof":                "must be one of: {param}",
}

// fieldMessage renders one validator rule failure.
func fieldMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}
