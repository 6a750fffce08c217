package items

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultQuantity = 1

// ItemID is assigned by the client when the item is created and never
// changes afterwards.
type ItemID string

// NewItemID returns an id of the form item-<unix millis>-<random suffix>.
func NewItemID() ItemID {
	return newItemIDAt(time.Now())
}

func newItemIDAt(now time.Time) ItemID {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ItemID("item-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix)
}

type Item struct {
	ID       ItemID `json:"item_id"`
	Name     string `json:"name"`
	Quantity Number `json:"quantity"`
	Price    Number `json:"price"`
	Checked  bool   `json:"checked"`
}

// NewItem builds an unchecked, unpriced item with a fresh id.
func NewItem(name string, quantity float64) Item {
	return Item{
		ID:       NewItemID(),
		Name:     strings.TrimSpace(name),
		Quantity: NumberOf(NormalizeQuantity(quantity)),
	}
}

// NormalizeQuantity maps NaN, infinities and non-positive values to 1.
func NormalizeQuantity(quantity float64) float64 {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return DefaultQuantity
	}
	return quantity
}

// ParseQuantity parses user input; anything unusable becomes 1.
func ParseQuantity(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return DefaultQuantity
	}
	return NormalizeQuantity(parsed)
}

// LineTotal is the amount shown next to an item regardless of its checked
// state.
func (i Item) LineTotal() float64 {
	return i.Price.FloatOr(0) * i.Quantity.FloatOr(DefaultQuantity)
}
