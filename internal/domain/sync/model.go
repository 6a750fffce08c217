package sync

import (
	"context"

	"pocketcart/internal/domain/items"
)

// Record is the remote copy of a list or trip as far as the mutator cares.
type Record struct {
	ID          string
	Name        string
	Items       items.Collection
	TotalAmount float64
}

// RemoteStore reads and fully replaces the item array of one record.
type RemoteStore interface {
	Get(ctx context.Context, id string) (Record, error)
	Replace(ctx context.Context, id string, c items.Collection) (Record, error)
}

// SessionResetter forgets the current credentials after a 401.
type SessionResetter interface {
	Reset(ctx context.Context) error
}

// Mutation derives the intended collection from the current local one.
type Mutation func(current items.Collection) (items.Collection, error)

type Result struct {
	Items      items.Collection
	Reconciled bool
	// Warning is set when the write succeeded but the server copy could not
	// be confirmed; the optimistic state is kept.
	Warning error
	Flagged []items.ItemID
}
