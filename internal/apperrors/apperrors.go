// Package apperrors defines the error taxonomy surfaced to API clients.
// Upstream database and network failures are collapsed into a small set of
// codes; raw error detail never leaves the server.
package apperrors

import (
	"context"
	"errors"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeDuplicateEntry   Code = "DUPLICATE_ENTRY"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeDatabaseError    Code = "DATABASE_ERROR"
	CodeNetworkError     Code = "NETWORK_ERROR"
	CodeValidationError  Code = "VALIDATION_ERROR"
)

// Sentinel errors used by controllers; handlers translate them to HTTP
// responses via CodeOf and StatusOf.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDatabase         = errors.New("database error")
	ErrNetwork          = errors.New("network error")
	ErrValidation       = errors.New("validation error")
)

// Postgres error classes we map explicitly; everything else is a generic
// database error.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInsufficientPrivs   = "42501"
)

// FromDatabase maps an upstream data-store error onto a sentinel from the
// taxonomy. Unrecognized errors collapse to ErrDatabase with no detail.
func FromDatabase(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return ErrDuplicateEntry
		case pgForeignKeyViolation:
			return ErrDatabase
		case pgInsufficientPrivs:
			return ErrPermissionDenied
		}
		return ErrDatabase
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrNetwork
	}

	return ErrDatabase
}

// CodeOf returns the taxonomy code for an error produced by a controller.
func CodeOf(err error) Code {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDuplicateEntry):
		return CodeDuplicateEntry
	case errors.Is(err, ErrPermissionDenied):
		return CodePermissionDenied
	case errors.Is(err, ErrValidation):
		return CodeValidationError
	case errors.Is(err, ErrNetwork):
		return CodeNetworkError
	default:
		return CodeDatabaseError
	}
}

// StatusOf returns the HTTP status for an error produced by a controller.
func StatusOf(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateEntry:
		return fiber.StatusConflict
	case CodePermissionDenied:
		return fiber.StatusForbidden
	case CodeValidationError:
		return fiber.StatusBadRequest
	case CodeNetworkError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the short user-safe message for an error. The original
// upstream error text is never returned to the client.
func Message(err error) string {
	switch CodeOf(err) {
	case CodeNotFound:
		return "The requested resource was not found."
	case CodeDuplicateEntry:
		return "This record already exists."
	case CodePermissionDenied:
		return "You do not have permission to perform this action."
	case CodeValidationError:
		// Validation failures are safe to surface as-is; they are produced
		// before any network call from caller-supplied input.
		return err.Error()
	case CodeNetworkError:
		return "A network error occurred. Please try again."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
