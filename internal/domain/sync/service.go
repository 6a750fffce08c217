package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"

	"pocketcart/internal/domain/items"
	"pocketcart/pkg/logger"
)

// Mutator applies item changes optimistically, writes the full collection to
// the remote store and then reconciles with what the server kept.
type Mutator struct {
	remote  RemoteStore
	session SessionResetter
	log     logger.Logger

	mu       stdsync.Mutex
	recordID string
	name     string
	local    items.Collection
}

func NewMutator(remote RemoteStore, session SessionResetter, log logger.Logger) *Mutator {
	return &Mutator{
		remote:  remote,
		session: session,
		log:     logger.OrNop(log),
	}
}

// Load fetches the record and makes it the local state.
func (m *Mutator) Load(ctx context.Context, id string) (Record, error) {
	record, err := m.remote.Get(ctx, id)
	if err != nil {
		remoteErr := classify("load items", ErrRemoteRead, err)
		if errors.Is(remoteErr, ErrNotAuthenticated) {
			m.clear(ctx)
		}
		return Record{}, remoteErr
	}
	m.Adopt(record)
	return record, nil
}

// Adopt replaces the local state without talking to the remote store.
func (m *Mutator) Adopt(record Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordID = record.ID
	m.name = record.Name
	m.local = append(items.Collection(nil), record.Items...)
}

func (m *Mutator) Items() items.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(items.Collection(nil), m.local...)
}

func (m *Mutator) RecordID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordID
}

// Apply runs mutation against the local items. Validation errors leave the
// state untouched. Remote failures keep the optimistic state and are
// returned as *RemoteError; a failed confirmation is only a warning.
func (m *Mutator) Apply(ctx context.Context, op string, mutation Mutation) (Result, error) {
	m.mu.Lock()
	id := m.recordID
	if id == "" {
		m.mu.Unlock()
		return Result{}, ErrNoRecord
	}
	current := m.local
	intended, err := mutation(current)
	if err != nil {
		m.mu.Unlock()
		return Result{Items: append(items.Collection(nil), current...)}, err
	}
	m.local = intended
	m.mu.Unlock()

	log := m.log.With("op", op, "record_id", id)

	if _, err := m.remote.Replace(ctx, id, intended); err != nil {
		remoteErr := classify(op, ErrRemoteWrite, err)
		if errors.Is(remoteErr, ErrNotAuthenticated) {
			m.clear(ctx)
			return Result{}, remoteErr
		}
		log.Warn("sync.apply: remote write failed, keeping local state", "err", remoteErr)
		return Result{Items: m.Items()}, remoteErr
	}

	fetched, err := m.remote.Get(ctx, id)
	if err != nil {
		remoteErr := classify(op, ErrRemoteRead, err)
		if errors.Is(remoteErr, ErrNotAuthenticated) {
			m.clear(ctx)
			return Result{}, remoteErr
		}
		log.Warn("sync.apply: refetch failed, keeping local state", "err", remoteErr)
		return Result{Items: m.Items(), Warning: remoteErr}, nil
	}

	if !Equivalent(intended, fetched.Items) {
		warning := fmt.Errorf("%s: %w", op, ErrReconciliationMismatch)
		log.Warn("sync.apply: remote items differ, keeping local state",
			"local_count", len(intended),
			"remote_count", len(fetched.Items),
		)
		return Result{Items: m.Items(), Warning: warning}, nil
	}

	m.mu.Lock()
	if m.recordID == id {
		m.local = append(items.Collection(nil), fetched.Items...)
		if fetched.Name != "" {
			m.name = fetched.Name
		}
	}
	m.mu.Unlock()

	return Result{Items: append(items.Collection(nil), fetched.Items...), Reconciled: true}, nil
}

func (m *Mutator) clear(ctx context.Context) {
	m.mu.Lock()
	m.recordID = ""
	m.name = ""
	m.local = nil
	m.mu.Unlock()

	m.log.Warn("sync.session: remote rejected credentials, clearing local state")
	if m.session == nil {
		return
	}
	if err := m.session.Reset(ctx); err != nil {
		m.log.Error("sync.session: reset failed", "err", err)
	}
}

// Equivalent reports whether fetched holds exactly the intended item ids,
// ignoring order and field values.
func Equivalent(intended, fetched items.Collection) bool {
	if len(intended) != len(fetched) {
		return false
	}
	ids := make(map[items.ItemID]struct{}, len(fetched))
	for _, item := range fetched {
		ids[item.ID] = struct{}{}
	}
	for _, item := range intended {
		if _, ok := ids[item.ID]; !ok {
			return false
		}
	}
	return true
}

func (m *Mutator) AddItem(ctx context.Context, item items.Item) (Result, error) {
	return m.Apply(ctx, "add item", func(current items.Collection) (items.Collection, error) {
		return current.Add(item)
	})
}

func (m *Mutator) RemoveItem(ctx context.Context, id items.ItemID) (Result, error) {
	return m.Apply(ctx, "delete item", func(current items.Collection) (items.Collection, error) {
		return current.Remove(id), nil
	})
}

func (m *Mutator) SetChecked(ctx context.Context, id items.ItemID, checked bool) (Result, error) {
	return m.Apply(ctx, "update item", func(current items.Collection) (items.Collection, error) {
		return current.SetChecked(id, checked)
	})
}

func (m *Mutator) SetPrice(ctx context.Context, id items.ItemID, price float64) (Result, error) {
	return m.Apply(ctx, "update price", func(current items.Collection) (items.Collection, error) {
		return current.SetPrice(id, price)
	})
}

func (m *Mutator) SetQuantity(ctx context.Context, id items.ItemID, quantity float64) (Result, error) {
	return m.Apply(ctx, "update quantity", func(current items.Collection) (items.Collection, error) {
		return current.SetQuantity(id, quantity)
	})
}

// ToggleAll flips every item and reports the ids that could not be checked
// for lack of a price.
func (m *Mutator) ToggleAll(ctx context.Context) (Result, error) {
	var flagged []items.ItemID
	result, err := m.Apply(ctx, "update items", func(current items.Collection) (items.Collection, error) {
		next, skipped := current.ToggleAll()
		flagged = skipped
		return next, nil
	})
	result.Flagged = flagged
	return result, err
}
