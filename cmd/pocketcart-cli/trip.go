package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
)

const currentTripTitle = "Current trip"

func (c *cli) trip(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	sub, rest := args[0], args[1:]

	if sub == "checkout" {
		return c.checkout(ctx)
	}

	mutator, err := c.loadTrip(ctx)
	if err != nil {
		return err
	}

	var result syncdomain.Result
	switch sub {
	case "show":
		c.showCollection(ctx, currentTripTitle, mutator.Items())
		return nil
	case "add":
		if len(rest) < 2 || len(rest) > 3 {
			return errUsage
		}
		quantity := ""
		if len(rest) == 3 {
			quantity = rest[2]
		}
		item, err := newTripItem(rest[0], rest[1], quantity)
		if err != nil {
			return err
		}
		result, err = mutator.AddItem(ctx, item)
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	case "check":
		fs := flag.NewFlagSet("trip check", flag.ContinueOnError)
		off := fs.Bool("off", false, "uncheck the item")
		positional, err := parseInterspersed(fs, rest)
		if err != nil || len(positional) != 1 {
			return errUsage
		}
		result, err = mutator.SetChecked(ctx, items.ItemID(positional[0]), !*off)
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	case "price":
		if len(rest) != 2 {
			return errUsage
		}
		price, err := parsePrice(rest[1])
		if err != nil {
			return err
		}
		result, err = mutator.SetPrice(ctx, items.ItemID(rest[0]), price)
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	case "qty":
		if len(rest) != 2 {
			return errUsage
		}
		result, err = mutator.SetQuantity(ctx, items.ItemID(rest[0]), items.ParseQuantity(rest[1]))
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	case "rm":
		if len(rest) != 1 {
			return errUsage
		}
		result, err = mutator.RemoveItem(ctx, items.ItemID(rest[0]))
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	case "toggle-all":
		result, err = mutator.ToggleAll(ctx)
		if err != nil {
			return c.mutationErr(ctx, currentTripTitle, result, err)
		}
	default:
		return errUsage
	}

	printResult(c.out, result)
	c.showCollection(ctx, currentTripTitle, result.Items)
	return nil
}

// loadTrip adopts the server's open trip. When that lookup fails for any
// reason but a rejected session, the last trip id seen is loaded instead.
func (c *cli) loadTrip(ctx context.Context) (*syncdomain.Mutator, error) {
	mutator := syncdomain.NewMutator(c.api.Trips(), c.store, c.log)

	trip, err := c.api.CurrentTrip(ctx)
	if err != nil {
		if syncdomain.IsUnauthorized(err) {
			return nil, c.remoteErr(ctx, err)
		}
		tripID, idErr := c.store.CurrentTripID(ctx)
		if idErr != nil || tripID == "" {
			return nil, c.remoteErr(ctx, err)
		}
		c.log.Warn("cli.trip: current trip lookup failed, using last known trip", "err", err, "trip_id", tripID)
		if _, loadErr := mutator.Load(ctx, tripID); loadErr != nil {
			return nil, c.mutationErr(ctx, currentTripTitle, syncdomain.Result{}, loadErr)
		}
		return mutator, nil
	}
	if err := c.store.SetCurrentTripID(ctx, trip.ID); err != nil {
		return nil, err
	}

	mutator.Adopt(syncdomain.Record{ID: trip.ID, Items: trip.Items, TotalAmount: trip.TotalAmount})
	return mutator, nil
}

func (c *cli) checkout(ctx context.Context) error {
	result, err := c.api.Checkout(ctx)
	if err != nil {
		return c.remoteErr(ctx, err)
	}
	if err := c.store.SetCurrentTripID(ctx, result.Open.ID); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "checked out %d items for %s\n", len(result.Closed.Items), formatMoney(result.Closed.TotalAmount))
	return nil
}

func (c *cli) history(ctx context.Context, args []string) error {
	var start, end string
	switch len(args) {
	case 0:
	case 2:
		start, end = args[0], args[1]
	default:
		return errUsage
	}

	history, err := c.api.History(ctx, start, end)
	if err != nil {
		return c.remoteErr(ctx, err)
	}
	if len(history.Trips) == 0 {
		fmt.Fprintln(c.out, "no trips")
	}
	for _, trip := range history.Trips {
		status := "open"
		if trip.Closed() {
			status = "closed"
		}
		fmt.Fprintf(c.out, "%s  %-6s  %3d items  %s  %s\n",
			trip.TripDate.Local().Format("2006-01-02"), status, len(trip.Items), formatMoney(trip.TotalAmount), trip.ID)
	}
	fmt.Fprintf(c.out, "Total spent: %s\n", formatMoney(history.TotalSpent))
	return nil
}

func (c *cli) showCollection(ctx context.Context, title string, collection items.Collection) {
	fmt.Fprintln(c.out, title)
	printItems(c.out, collection)
	budget, ok := c.userBudget(ctx)
	printBalance(c.out, collection, budget, ok)
}

// mutationErr maps a mutator failure to what the user should see. A
// rejected session has already been cleared by the mutator. When the write
// failed the local edit is kept, so it is shown next to the error.
func (c *cli) mutationErr(ctx context.Context, title string, result syncdomain.Result, err error) error {
	if syncdomain.IsUnauthorized(err) {
		return errSignedOut
	}
	if errors.Is(err, syncdomain.ErrRemoteWrite) {
		fmt.Fprintf(c.out, "warning: %v (showing local changes)\n", err)
		c.showCollection(ctx, title, result.Items)
	}
	return err
}
