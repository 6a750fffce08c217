package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
)

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", items.RoundCents(amount))
}

func printItems(out io.Writer, collection items.Collection) {
	if len(collection) == 0 {
		fmt.Fprintln(out, "  (no items)")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tID\tNAME\tQTY\tPRICE\tLINE")
	for _, item := range collection {
		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		price := "-"
		if item.Price.IsSet() {
			price = item.Price.String()
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			mark, item.ID, item.Name, item.Quantity.String(), price, formatMoney(item.LineTotal()))
	}
	_ = tw.Flush()
}

// printBalance shows the running total and, when a budget is set, what is
// left or by how much it is exceeded.
func printBalance(out io.Writer, collection items.Collection, budget float64, hasBudget bool) {
	fmt.Fprintf(out, "Total: %s\n", formatMoney(items.Total(collection)))
	if !hasBudget {
		return
	}
	balance := items.Remaining(budget, collection)
	fmt.Fprintf(out, "Budget: %s\n", formatMoney(budget))
	if balance.OverBudget {
		fmt.Fprintf(out, "Over budget by: %s\n", formatMoney(balance.Amount))
		return
	}
	fmt.Fprintf(out, "Remaining: %s\n", formatMoney(balance.Amount))
}

func printResult(out io.Writer, result syncdomain.Result) {
	if result.Warning != nil {
		fmt.Fprintf(out, "warning: %v (showing local changes)\n", result.Warning)
	}
	if len(result.Flagged) > 0 {
		ids := make([]string, 0, len(result.Flagged))
		for _, id := range result.Flagged {
			ids = append(ids, string(id))
		}
		fmt.Fprintf(out, "needs a price before it can be checked: %s\n", strings.Join(ids, ", "))
	}
}
