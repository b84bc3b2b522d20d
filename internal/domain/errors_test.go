package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrEmptyCollection,
		ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "quote",
			id:          "q1",
			expectedMsg: `quote with id "q1" not found`,
		},
		{
			name:        "with entity only",
			entity:      "user",
			id:          "",
			expectedMsg: "user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		fields      []string
		expectedMsg string
	}{
		{
			name:        "single field",
			message:     "is required",
			fields:      []string{"text"},
			expectedMsg: "validation failed for text: is required",
		},
		{
			name:        "multiple fields",
			message:     "is required",
			fields:      []string{"text", "author"},
			expectedMsg: "validation failed for text, author: is required",
		},
		{
			name:        "no fields",
			message:     "bad input",
			expectedMsg: "validation failed: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.message, tt.fields...)

			assert.Equal(t, tt.expectedMsg, err.Error())
			assert.True(t, IsValidation(err))

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.fields, validationErr.Fields)
		})
	}
}

func TestEmptyCollectionError(t *testing.T) {
	err := NewEmptyCollectionError("quotes")

	assert.Equal(t, "no quotes available", err.Error())
	assert.True(t, IsEmptyCollection(err))
	assert.False(t, IsNotFound(err))
}

func TestUnavailableError(t *testing.T) {
	withReason := NewUnavailableError("weather-service", "timeout")
	assert.Equal(t, `service "weather-service" unavailable: timeout`, withReason.Error())
	assert.True(t, IsUnavailable(withReason))

	bare := NewUnavailableError("weather-service", "")
	assert.Equal(t, `service "weather-service" unavailable`, bare.Error())
}

func TestIsHelpers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("getting quote: %w", NewNotFoundError("quote", "q9"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsEmptyCollection(wrapped))
	assert.False(t, IsUnavailable(wrapped))
}
