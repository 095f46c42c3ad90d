package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyName is returned when a group or member is created with a
	// name that is blank after trimming whitespace.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidImportShape is returned when a catalog import payload is
	// not a JSON array. Individual malformed entries are coerced, never
	// rejected; only the outer shape is validated.
	ErrInvalidImportShape = errors.New("catalog import payload must be an array")

	// ErrWrongCardCount is returned when a month commit does not carry
	// exactly four cards.
	ErrWrongCardCount = errors.New("a month reading requires exactly four cards")

	// ErrDuplicateCardReuse is returned when a month commit includes a card
	// already drawn in an earlier month of the same person's year.
	ErrDuplicateCardReuse = errors.New("card already drawn earlier this year")

	// ErrCardNotFound is returned when a catalog lookup misses.
	ErrCardNotFound = errors.New("card not found in catalog")

	// ErrMemberNotFound is returned when a roster operation references a
	// member that does not exist.
	ErrMemberNotFound = errors.New("member not found in group")

	// ErrInvalidMonth is returned when a month index is outside 0-11 or a
	// month name is not a recognized month name.
	ErrInvalidMonth = errors.New("invalid month")
)
