package items

// Collection is the ordered item array of one list or trip. Operations never
// modify the receiver; each returns a fresh slice.
type Collection []Item

func (c Collection) clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

func (c Collection) indexOf(id ItemID) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func (c Collection) Find(id ItemID) (Item, bool) {
	index := c.indexOf(id)
	if index < 0 {
		return Item{}, false
	}
	return c[index], true
}

func (c Collection) IDs() []ItemID {
	ids := make([]ItemID, 0, len(c))
	for _, item := range c {
		ids = append(ids, item.ID)
	}
	return ids
}

// AllChecked reports whether every item is checked. An empty collection
// counts as all checked.
func (c Collection) AllChecked() bool {
	for _, item := range c {
		if !item.Checked {
			return false
		}
	}
	return true
}

func (c Collection) Add(item Item) (Collection, error) {
	if quantity, ok := item.Quantity.Float(); !ok || quantity <= 0 {
		item.Quantity = NumberOf(NormalizeQuantity(quantity))
	}
	if err := validateAt(len(c), item); err != nil {
		return c, err
	}
	if c.indexOf(item.ID) >= 0 {
		return c, newValidationError(len(c), item.ID, ErrDuplicateItemID, "duplicate item id")
	}

	out := make(Collection, len(c), len(c)+1)
	copy(out, c)
	return append(out, item), nil
}

// Remove drops the item with the given id. A missing id is not an error.
func (c Collection) Remove(id ItemID) Collection {
	out := make(Collection, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func (c Collection) SetChecked(id ItemID, checked bool) (Collection, error) {
	index := c.indexOf(id)
	if index < 0 {
		return c, newValidationError(-1, id, ErrItemNotFound, "item not found")
	}
	if checked {
		if err := validateForChecked(index, c[index]); err != nil {
			return c, err
		}
	}

	out := c.clone()
	out[index].Checked = checked
	return out, nil
}

// SetPrice records the price and marks the item checked: entering a price
// confirms the purchase.
func (c Collection) SetPrice(id ItemID, price float64) (Collection, error) {
	index := c.indexOf(id)
	if index < 0 {
		return c, newValidationError(-1, id, ErrItemNotFound, "item not found")
	}

	updated := c[index]
	updated.Price = NumberOf(price)
	updated.Checked = true
	if err := validateForChecked(index, updated); err != nil {
		return c, err
	}

	out := c.clone()
	out[index] = updated
	return out, nil
}

func (c Collection) SetQuantity(id ItemID, quantity float64) (Collection, error) {
	index := c.indexOf(id)
	if index < 0 {
		return c, newValidationError(-1, id, ErrItemNotFound, "item not found")
	}

	out := c.clone()
	out[index].Quantity = NumberOf(NormalizeQuantity(quantity))
	return out, nil
}

// SetAllChecked sets every item to checked. When checking, items without a
// valid price stay unchecked and their ids are returned as flagged.
func (c Collection) SetAllChecked(checked bool) (Collection, []ItemID) {
	out := c.clone()
	var flagged []ItemID
	for i := range out {
		if checked && validateForChecked(i, out[i]) != nil {
			out[i].Checked = false
			flagged = append(flagged, out[i].ID)
			continue
		}
		out[i].Checked = checked
	}
	return out, flagged
}

// ToggleAll unchecks everything when all items are checked and otherwise
// checks everything that carries a valid price.
func (c Collection) ToggleAll() (Collection, []ItemID) {
	return c.SetAllChecked(!c.AllChecked())
}
