package items

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func pricedItem(id string, price, quantity float64, checked bool) Item {
	return Item{
		ID:       ItemID(id),
		Name:     id,
		Quantity: NumberOf(quantity),
		Price:    NumberOf(price),
		Checked:  checked,
	}
}

func unpricedItem(id string) Item {
	return Item{ID: ItemID(id), Name: id, Quantity: NumberOf(1)}
}

func TestAddAppendsWithoutTouchingReceiver(t *testing.T) {
	base := Collection{pricedItem("a", 2.5, 2, true)}

	next, err := base.Add(unpricedItem("b"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(base) != 1 {
		t.Fatalf("expected receiver untouched, got %d items", len(base))
	}
	if !reflect.DeepEqual(next.IDs(), []ItemID{"a", "b"}) {
		t.Fatalf("expected insertion order, got %v", next.IDs())
	}
}

func TestAddDefaultsQuantity(t *testing.T) {
	next, err := Collection{}.Add(Item{ID: "a", Name: "Milk"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := next[0].Quantity.FloatOr(0); got != 1 {
		t.Fatalf("expected default quantity 1, got %v", got)
	}
}

func TestAddNormalizesNonPositiveQuantity(t *testing.T) {
	next, err := Collection{}.Add(Item{ID: "a", Quantity: NumberOf(-3), Price: NumberOf(2), Checked: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := next[0].Quantity.FloatOr(0); got != 1 {
		t.Fatalf("expected quantity 1, got %v", got)
	}
	if got := Total(next); got != 2 {
		t.Fatalf("expected total 2, got %v", got)
	}
}

func TestValidateCollectionRejectsNonPositiveQuantity(t *testing.T) {
	for _, quantity := range []Number{NumberOf(-3), NumberOf(0), NumberFromString("lots")} {
		err := ValidateCollection(Collection{{ID: "a", Quantity: quantity}})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for %+v, got %v", quantity, err)
		}
	}

	if err := ValidateCollection(Collection{{ID: "a"}, {ID: "b", Quantity: NumberFromString("2")}}); err != nil {
		t.Fatalf("expected absent and numeric string quantities to pass, got %v", err)
	}
}

func TestAddRejectsCheckedWithoutPrice(t *testing.T) {
	item := unpricedItem("a")
	item.Checked = true

	_, err := Collection{}.Add(item)
	if !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	base := Collection{unpricedItem("a")}

	_, err := base.Add(unpricedItem("a"))
	if !errors.Is(err, ErrDuplicateItemID) {
		t.Fatalf("expected ErrDuplicateItemID, got %v", err)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	base := Collection{unpricedItem("a"), unpricedItem("b")}

	next := base.Remove("zzz")
	if !reflect.DeepEqual(next, base) {
		t.Fatalf("expected unchanged collection, got %v", next.IDs())
	}

	next = base.Remove("a")
	if !reflect.DeepEqual(next.IDs(), []ItemID{"b"}) {
		t.Fatalf("expected only b left, got %v", next.IDs())
	}
	if len(base) != 2 {
		t.Fatalf("expected receiver untouched")
	}
}

func TestSetCheckedRequiresPrice(t *testing.T) {
	base := Collection{pricedItem("a", 2.5, 2, true), unpricedItem("b")}

	next, err := base.SetChecked("b", true)
	if !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if !reflect.DeepEqual(next, base) {
		t.Fatalf("expected collection unchanged on failure")
	}
	if Total(next) != 5 {
		t.Fatalf("expected total to stay 5, got %v", Total(next))
	}
}

func TestSetCheckedIsIdempotent(t *testing.T) {
	base := Collection{pricedItem("a", 3, 1, false)}

	once, err := base.SetChecked("a", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	twice, err := once.SetChecked("a", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected identical collections, got %+v and %+v", once, twice)
	}
	if base[0].Checked {
		t.Fatalf("expected receiver untouched")
	}
}

func TestSetCheckedUncheckAlwaysAllowed(t *testing.T) {
	item := unpricedItem("a")
	item.Checked = true
	base := Collection{item}

	next, err := base.SetChecked("a", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if next[0].Checked {
		t.Fatalf("expected item unchecked")
	}
}

func TestSetCheckedUnknownItem(t *testing.T) {
	_, err := Collection{}.SetChecked("missing", true)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSetPriceMarksChecked(t *testing.T) {
	base := Collection{unpricedItem("a")}

	next, err := base.SetPrice("a", 4.2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !next[0].Checked {
		t.Fatalf("expected item checked after price set")
	}
	if !next[0].Price.IsNumber() || next[0].Price.FloatOr(0) != 4.2 {
		t.Fatalf("expected numeric price 4.2, got %v", next[0].Price)
	}
}

func TestSetPriceRejectsNegative(t *testing.T) {
	base := Collection{unpricedItem("a")}

	_, err := base.SetPrice("a", -1)
	if !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestSetQuantityCoerces(t *testing.T) {
	base := Collection{pricedItem("a", 1, 3, true)}

	cases := []float64{0, -2}
	for _, quantity := range cases {
		next, err := base.SetQuantity("a", quantity)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := next[0].Quantity.FloatOr(0); got != 1 {
			t.Fatalf("quantity %v: expected 1, got %v", quantity, got)
		}
	}

	next, err := base.SetQuantity("a", ParseQuantity("abc"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := next[0].Quantity.FloatOr(0); got != 1 {
		t.Fatalf("expected unparseable quantity to become 1, got %v", got)
	}

	next, err = base.SetQuantity("a", 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := next[0].Quantity.FloatOr(0); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestToggleAllUnchecksWhenAllChecked(t *testing.T) {
	base := Collection{pricedItem("a", 1, 1, true), pricedItem("b", 2, 1, true)}

	next, flagged := base.ToggleAll()
	if len(flagged) != 0 {
		t.Fatalf("expected nothing flagged, got %v", flagged)
	}
	for _, item := range next {
		if item.Checked {
			t.Fatalf("expected %s unchecked", item.ID)
		}
	}
}

func TestToggleAllChecksPricedAndFlagsRest(t *testing.T) {
	base := Collection{pricedItem("a", 1, 1, true), pricedItem("b", 2, 1, false), unpricedItem("c")}

	next, flagged := base.ToggleAll()
	if !next[0].Checked || !next[1].Checked {
		t.Fatalf("expected priced items checked, got %+v", next)
	}
	if next[2].Checked {
		t.Fatalf("expected unpriced item left unchecked")
	}
	if !reflect.DeepEqual(flagged, []ItemID{"c"}) {
		t.Fatalf("expected c flagged, got %v", flagged)
	}
	if err := ValidateCollection(next); err != nil {
		t.Fatalf("expected toggled collection valid, got %v", err)
	}
}

func TestToggleAllOnUncheckedCollection(t *testing.T) {
	base := Collection{pricedItem("a", 1, 1, false), pricedItem("b", 2, 1, false)}

	next, _ := base.ToggleAll()
	if !next.AllChecked() {
		t.Fatalf("expected all checked, got %+v", next)
	}
}

func TestNewItemIDFormat(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	first := newItemIDAt(at)
	second := newItemIDAt(at)

	if !strings.HasPrefix(string(first), "item-1700000000000-") {
		t.Fatalf("unexpected id format %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct ids for the same millisecond, got %q twice", first)
	}
}
