package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pocketcart/internal/domain/items"
)

var errUsage = errors.New("usage")

const defaultItemName = "Unnamed Item"

// parseInterspersed parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func parsePrice(value string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number: %w", value, items.ErrInvalidPrice)
	}
	return price, nil
}

// newTripItem builds an item picked up during a trip: it is checked on
// creation and needs a positive price.
func newTripItem(name, price, quantity string) (items.Item, error) {
	amount, err := parsePrice(price)
	if err != nil {
		return items.Item{}, err
	}
	if amount <= 0 {
		return items.Item{}, fmt.Errorf("price must be greater than 0: %w", items.ErrInvalidPrice)
	}

	qty := float64(items.DefaultQuantity)
	if quantity != "" {
		qty = items.ParseQuantity(quantity)
	}

	item := items.NewItem(itemName(name), qty)
	item.Price = items.NumberOf(amount)
	item.Checked = true
	return item, nil
}

func itemName(name string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return defaultItemName
}
