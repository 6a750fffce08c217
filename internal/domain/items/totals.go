package items

import "math"

// Total sums price*quantity over checked items that carry both a price and a
// quantity. Everything else contributes zero.
func Total(c Collection) float64 {
	var total float64
	for _, item := range c {
		if !item.Checked || !item.Price.Truthy() || !item.Quantity.Truthy() {
			continue
		}
		total += item.Price.FloatOr(0) * item.Quantity.FloatOr(DefaultQuantity)
	}
	return total
}

// Balance is the budget position: Amount is always non-negative and
// OverBudget tells which side of the budget it is on.
type Balance struct {
	Budget     float64
	Total      float64
	Amount     float64
	OverBudget bool
}

func Remaining(budget float64, c Collection) Balance {
	total := Total(c)
	diff := budget - total
	return Balance{
		Budget:     budget,
		Total:      total,
		Amount:     math.Abs(diff),
		OverBudget: diff < 0,
	}
}

// RoundCents rounds an amount to two decimal places for storage and display.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
