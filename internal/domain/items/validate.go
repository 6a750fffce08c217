package items

// ValidateForChecked enforces the price rule for a checked item: the price
// must be a JSON number and not negative.
func ValidateForChecked(item Item) error {
	return validateForChecked(-1, item)
}

func validateForChecked(index int, item Item) error {
	if !item.Price.IsNumber() {
		if !item.Price.IsSet() {
			return newValidationError(index, item.ID, ErrInvalidPrice, "checked item requires a price")
		}
		return newValidationError(index, item.ID, ErrInvalidPrice, "price must be a number")
	}
	value, _ := item.Price.Float()
	if value < 0 {
		return newValidationError(index, item.ID, ErrInvalidPrice, "price must not be negative")
	}
	return nil
}

// validateQuantity accepts an absent quantity; a present one must be a
// positive number.
func validateQuantity(index int, item Item) error {
	if !item.Quantity.IsSet() {
		return nil
	}
	if value, ok := item.Quantity.Float(); !ok || value <= 0 {
		return newValidationError(index, item.ID, ErrInvalidQuantity, "quantity must be a positive number")
	}
	return nil
}

// Validate checks a single item in isolation.
func Validate(item Item) error {
	return validateAt(-1, item)
}

func validateAt(index int, item Item) error {
	if item.ID == "" {
		return newValidationError(index, "", ErrMissingItemID, "item id is required")
	}
	if err := validateQuantity(index, item); err != nil {
		return err
	}
	if item.Checked {
		return validateForChecked(index, item)
	}
	return nil
}

// ValidateCollection checks every item plus id uniqueness. It is run on the
// client before an optimistic change and on the server before every write.
func ValidateCollection(c Collection) error {
	seen := make(map[ItemID]struct{}, len(c))
	for index, item := range c {
		if err := validateAt(index, item); err != nil {
			return err
		}
		if _, ok := seen[item.ID]; ok {
			return newValidationError(index, item.ID, ErrDuplicateItemID, "duplicate item id")
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
