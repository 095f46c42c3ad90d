package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ninthhouse/arcana-api/internal/domain"
	"github.com/ninthhouse/arcana-api/internal/service"
	"github.com/ninthhouse/arcana-api/internal/service/auth"
	"github.com/ninthhouse/arcana-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrSnapshotNotFound):
		return http.StatusNotFound

	// Conflict errors: the request was well-formed but the ledger or
	// session state forbids it
	case errors.Is(err, domain.ErrDuplicateCardReuse),
		errors.Is(err, domain.ErrCardUnavailable),
		errors.Is(err, domain.ErrSessionComplete),
		errors.Is(err, domain.ErrSessionNotReady),
		errors.Is(err, domain.ErrPickLimit):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidImportShape),
		errors.Is(err, domain.ErrWrongCardCount),
		errors.Is(err, domain.ErrInvalidMonth),
		errors.Is(err, domain.ErrCardNotPicked),
		errors.Is(err, service.ErrUnknownFilter):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidPassword):
		return "Invalid credentials"

	// Not found errors
	case errors.Is(err, domain.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, domain.ErrMemberNotFound):
		return "Member not found"

	case errors.Is(err, service.ErrGroupNotFound):
		return "Group not found"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Selection session not found"

	case errors.Is(err, store.ErrSnapshotNotFound):
		return "Snapshot not found"

	// Conflict errors
	case errors.Is(err, domain.ErrDuplicateCardReuse):
		return "Card already used this year"

	case errors.Is(err, domain.ErrCardUnavailable):
		return "Card is not available for this month"

	case errors.Is(err, domain.ErrSessionComplete):
		return "Selection session already finished its year"

	case errors.Is(err, domain.ErrSessionNotReady):
		return "Four cards must be picked before committing"

	case errors.Is(err, domain.ErrPickLimit):
		return "Four cards are already picked"

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyName):
		return "Name must not be empty"

	case errors.Is(err, domain.ErrInvalidImportShape):
		return "Import payload must be an array of cards"

	case errors.Is(err, domain.ErrWrongCardCount):
		return "A month entry requires exactly four cards"

	case errors.Is(err, domain.ErrInvalidMonth):
		return "Invalid month"

	case errors.Is(err, domain.ErrCardNotPicked):
		return "Card is not among the current picks"

	case errors.Is(err, service.ErrUnknownFilter):
		return "Unknown rankings filter"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'LoginRequest.Password' Error:Field
		// validation for 'Password' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "too small"
	case "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
