package lists

import "errors"

var (
	ErrListNotFound = errors.New("shopping list not found")
	ErrNameRequired = errors.New("list name is required")
)
