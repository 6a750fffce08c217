package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
)

func (c *cli) lists(ctx context.Context) error {
	found, err := c.api.ListLists(ctx)
	if err != nil {
		return c.remoteErr(ctx, err)
	}
	if len(found) == 0 {
		fmt.Fprintln(c.out, "no shopping lists")
		return nil
	}
	for _, list := range found {
		fmt.Fprintf(c.out, "%s  %-24s  %d items\n", list.ID, list.Name, len(list.Items))
	}
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "new":
		if len(rest) == 0 {
			return errUsage
		}
		created, err := c.api.CreateList(ctx, strings.Join(rest, " "))
		if err != nil {
			return c.remoteErr(ctx, err)
		}
		fmt.Fprintf(c.out, "created %s (%s)\n", created.Name, created.ID)
		return nil
	case "delete":
		if len(rest) != 1 {
			return errUsage
		}
		if err := c.api.DeleteList(ctx, rest[0]); err != nil {
			return c.remoteErr(ctx, err)
		}
		fmt.Fprintln(c.out, "deleted")
		return nil
	}

	if len(rest) == 0 {
		return errUsage
	}
	listID, rest := rest[0], rest[1:]

	mutator := syncdomain.NewMutator(c.api.Lists(), c.store, c.log)
	record, err := mutator.Load(ctx, listID)
	if err != nil {
		return c.mutationErr(ctx, listID, syncdomain.Result{}, err)
	}

	var result syncdomain.Result
	switch sub {
	case "show":
		c.showCollection(ctx, record.Name, mutator.Items())
		return nil
	case "add":
		if len(rest) < 1 || len(rest) > 2 {
			return errUsage
		}
		quantity := float64(items.DefaultQuantity)
		if len(rest) == 2 {
			quantity = items.ParseQuantity(rest[1])
		}
		result, err = mutator.AddItem(ctx, items.NewItem(itemName(rest[0]), quantity))
	case "check":
		fs := flag.NewFlagSet("list check", flag.ContinueOnError)
		off := fs.Bool("off", false, "uncheck the item")
		positional, parseErr := parseInterspersed(fs, rest)
		if parseErr != nil || len(positional) != 1 {
			return errUsage
		}
		result, err = mutator.SetChecked(ctx, items.ItemID(positional[0]), !*off)
	case "rm":
		if len(rest) != 1 {
			return errUsage
		}
		result, err = mutator.RemoveItem(ctx, items.ItemID(rest[0]))
	case "toggle-all":
		result, err = mutator.ToggleAll(ctx)
	default:
		return errUsage
	}
	if err != nil {
		return c.mutationErr(ctx, record.Name, result, err)
	}

	printResult(c.out, result)
	c.showCollection(ctx, record.Name, result.Items)
	return nil
}
