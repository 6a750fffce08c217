package items

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid item")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrMissingItemID   = errors.New("item id is required")
	ErrDuplicateItemID = errors.New("duplicate item id")
	ErrItemNotFound    = errors.New("item not found")
)

// ValidationError describes why a single item was rejected. It matches
// ErrValidation and the more specific cause with errors.Is.
type ValidationError struct {
	Index  int
	ItemID ItemID
	Reason string
	cause  error
}

func newValidationError(index int, id ItemID, cause error, reason string) *ValidationError {
	return &ValidationError{Index: index, ItemID: id, Reason: reason, cause: cause}
}

func (e *ValidationError) Error() string {
	switch {
	case e.ItemID != "":
		return fmt.Sprintf("item %q: %s", e.ItemID, e.Reason)
	case e.Index >= 0:
		return fmt.Sprintf("item at index %d: %s", e.Index, e.Reason)
	default:
		return "item: " + e.Reason
	}
}

func (e *ValidationError) Unwrap() []error {
	if e.cause == nil || e.cause == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{e.cause, ErrValidation}
}
