package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDatabase(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil passes through",
			input:    nil,
			expected: nil,
		},
		{
			name:     "record not found",
			input:    gorm.ErrRecordNotFound,
			expected: ErrNotFound,
		},
		{
			name:     "wrapped record not found",
			input:    fmt.Errorf("query failed: %w", gorm.ErrRecordNotFound),
			expected: ErrNotFound,
		},
		{
			name:     "unique violation",
			input:    &pq.Error{Code: "23505"},
			expected: ErrDuplicateEntry,
		},
		{
			name:     "foreign key violation collapses to database error",
			input:    &pq.Error{Code: "23503"},
			expected: ErrDatabase,
		},
		{
			name:     "insufficient privilege",
			input:    &pq.Error{Code: "42501"},
			expected: ErrPermissionDenied,
		},
		{
			name:     "unknown postgres code collapses to database error",
			input:    &pq.Error{Code: "XX000", Message: "internal secret detail"},
			expected: ErrDatabase,
		},
		{
			name:     "arbitrary error collapses to database error",
			input:    errors.New("connection pool exhausted"),
			expected: ErrDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromDatabase(tt.input)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(ErrNotFound))
	assert.Equal(t, CodeDuplicateEntry, CodeOf(ErrDuplicateEntry))
	assert.Equal(t, CodePermissionDenied, CodeOf(ErrPermissionDenied))
	assert.Equal(t, CodeValidationError, CodeOf(ErrValidation))
	assert.Equal(t, CodeNetworkError, CodeOf(ErrNetwork))
	assert.Equal(t, CodeDatabaseError, CodeOf(ErrDatabase))
	assert.Equal(t, CodeDatabaseError, CodeOf(errors.New("anything else")))
}

func TestCodeOf_WrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("%w: missing service type", ErrValidation)
	assert.Equal(t, CodeValidationError, CodeOf(wrapped))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, StatusOf(ErrNotFound))
	assert.Equal(t, fiber.StatusConflict, StatusOf(ErrDuplicateEntry))
	assert.Equal(t, fiber.StatusForbidden, StatusOf(ErrPermissionDenied))
	assert.Equal(t, fiber.StatusBadRequest, StatusOf(ErrValidation))
	assert.Equal(t, fiber.StatusBadGateway, StatusOf(ErrNetwork))
	assert.Equal(t, fiber.StatusInternalServerError, StatusOf(ErrDatabase))
}

func TestMessage_NeverLeaksUpstreamDetail(t *testing.T) {
	upstream := &pq.Error{Code: "XX000", Message: "password authentication failed for role"}
	mapped := FromDatabase(upstream)

	msg := Message(mapped)

	assert.NotContains(t, msg, "password")
	assert.NotContains(t, msg, "role")
	assert.Equal(t, "An unexpected error occurred. Please try again.", msg)
}

func TestMessage_ValidationSurfacesDetail(t *testing.T) {
	err := fmt.Errorf("%w: property is required", ErrValidation)
	assert.Contains(t, Message(err), "property is required")
}
