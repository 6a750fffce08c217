package sync

import (
	"context"
	"errors"
	"net/http"
	stdsync "sync"
	"testing"

	"pocketcart/internal/domain/items"
)

type fakeRemote struct {
	mu stdsync.Mutex

	records    map[string]items.Collection
	replaceErr error
	getErr     error
	// dropOnWrite simulates a server that loses the last item.
	dropOnWrite bool

	replaceCalls int
	getCalls     int
}

func newFakeRemote(id string, c items.Collection) *fakeRemote {
	return &fakeRemote{records: map[string]items.Collection{id: c}}
}

func (f *fakeRemote) Get(_ context.Context, id string) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return Record{}, f.getErr
	}
	c, ok := f.records[id]
	if !ok {
		return Record{}, &RemoteError{Status: http.StatusNotFound, Code: "not_found", Message: "record not found"}
	}
	return Record{ID: id, Items: append(items.Collection(nil), c...)}, nil
}

func (f *fakeRemote) Replace(_ context.Context, id string, c items.Collection) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	if f.replaceErr != nil {
		return Record{}, f.replaceErr
	}
	stored := append(items.Collection(nil), c...)
	if f.dropOnWrite && len(stored) > 0 {
		stored = stored[:len(stored)-1]
	}
	f.records[id] = stored
	return Record{ID: id, Items: stored}, nil
}

type fakeSession struct {
	resets int
}

func (f *fakeSession) Reset(context.Context) error {
	f.resets++
	return nil
}

func priced(id string, price float64) items.Item {
	return items.Item{ID: items.ItemID(id), Name: id, Quantity: items.NumberOf(1), Price: items.NumberOf(price), Checked: true}
}

func newLoadedMutator(t *testing.T, remote *fakeRemote, session SessionResetter) *Mutator {
	t.Helper()
	m := NewMutator(remote, session, nil)
	if _, err := m.Load(context.Background(), "trip-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return m
}

func TestApplyAdoptsMatchingRemoteState(t *testing.T) {
	remote := newFakeRemote("trip-1", items.Collection{priced("a", 2.5)})
	m := newLoadedMutator(t, remote, nil)

	result, err := m.AddItem(context.Background(), priced("b", 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Reconciled || result.Warning != nil {
		t.Fatalf("expected reconciled result, got %+v", result)
	}
	if len(m.Items()) != 2 {
		t.Fatalf("expected 2 local items, got %d", len(m.Items()))
	}
	if remote.replaceCalls != 1 || remote.getCalls != 2 {
		t.Fatalf("expected 1 write and 2 reads, got %d and %d", remote.replaceCalls, remote.getCalls)
	}
}

func TestApplyValidationLeavesStateAndSkipsRemote(t *testing.T) {
	remote := newFakeRemote("trip-1", items.Collection{
		priced("a", 2.5),
		{ID: "b", Name: "b", Quantity: items.NumberOf(1)},
	})
	m := newLoadedMutator(t, remote, nil)

	_, err := m.SetChecked(context.Background(), "b", true)
	if !errors.Is(err, items.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if remote.replaceCalls != 0 {
		t.Fatalf("expected no remote write, got %d", remote.replaceCalls)
	}
	if items.Total(m.Items()) != 2.5 {
		t.Fatalf("expected total unchanged, got %v", items.Total(m.Items()))
	}
}

func TestApplyMismatchKeepsOptimisticState(t *testing.T) {
	remote := newFakeRemote("trip-1", items.Collection{priced("a", 1)})
	m := newLoadedMutator(t, remote, nil)
	remote.dropOnWrite = true

	result, err := m.AddItem(context.Background(), priced("b", 2))
	if err != nil {
		t.Fatalf("expected non-fatal mismatch, got %v", err)
	}
	if !errors.Is(result.Warning, ErrReconciliationMismatch) {
		t.Fatalf("expected mismatch warning, got %v", result.Warning)
	}
	if result.Reconciled {
		t.Fatalf("expected result not reconciled")
	}
	if len(m.Items()) != 2 {
		t.Fatalf("expected optimistic 2 items kept, got %d", len(m.Items()))
	}
}

func TestApplyWriteFailureNamesOperation(t *testing.T) {
	remote := newFakeRemote("trip-1", nil)
	m := newLoadedMutator(t, remote, nil)
	remote.replaceErr = &RemoteError{Status: http.StatusInternalServerError, Message: "boom"}

	result, err := m.AddItem(context.Background(), priced("a", 1))
	if !errors.Is(err, ErrRemoteWrite) {
		t.Fatalf("expected ErrRemoteWrite, got %v", err)
	}
	if err.Error() != "failed to add item: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if len(result.Items) != 1 || len(m.Items()) != 1 {
		t.Fatalf("expected optimistic item kept, got %d", len(m.Items()))
	}
}

func TestApplyRefetchFailureIsWarning(t *testing.T) {
	remote := newFakeRemote("trip-1", nil)
	m := newLoadedMutator(t, remote, nil)
	remote.getErr = errors.New("timeout")

	result, err := m.AddItem(context.Background(), priced("a", 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !errors.Is(result.Warning, ErrRemoteRead) {
		t.Fatalf("expected ErrRemoteRead warning, got %v", result.Warning)
	}
	if len(m.Items()) != 1 {
		t.Fatalf("expected optimistic item kept")
	}
}

func TestApplyUnauthorizedClearsSession(t *testing.T) {
	remote := newFakeRemote("trip-1", items.Collection{priced("a", 1)})
	session := &fakeSession{}
	m := newLoadedMutator(t, remote, session)
	remote.replaceErr = &RemoteError{Status: http.StatusUnauthorized, Message: "Not authenticated"}

	_, err := m.RemoveItem(context.Background(), "a")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if session.resets != 1 {
		t.Fatalf("expected session reset once, got %d", session.resets)
	}
	if len(m.Items()) != 0 || m.RecordID() != "" {
		t.Fatalf("expected local state cleared")
	}
}

func TestApplyWithoutRecord(t *testing.T) {
	m := NewMutator(newFakeRemote("trip-1", nil), nil, nil)

	if _, err := m.AddItem(context.Background(), priced("a", 1)); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestToggleAllReportsFlagged(t *testing.T) {
	remote := newFakeRemote("trip-1", items.Collection{
		priced("a", 1),
		{ID: "b", Name: "b", Quantity: items.NumberOf(1)},
	})
	m := newLoadedMutator(t, remote, nil)

	result, err := m.ToggleAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(result.Flagged) != 1 || result.Flagged[0] != "b" {
		t.Fatalf("expected b flagged, got %v", result.Flagged)
	}
}

func TestEquivalentIgnoresOrderAndValues(t *testing.T) {
	intended := items.Collection{priced("a", 1), priced("b", 2)}
	fetched := items.Collection{priced("b", 9), priced("a", 1)}

	if !Equivalent(intended, fetched) {
		t.Fatalf("expected equivalent collections")
	}
	if Equivalent(intended, fetched[:1]) {
		t.Fatalf("expected length mismatch to fail")
	}
	if Equivalent(intended, items.Collection{priced("a", 1), priced("c", 2)}) {
		t.Fatalf("expected id mismatch to fail")
	}
}

func TestConcurrentMutationsAreMemorySafe(t *testing.T) {
	remote := newFakeRemote("trip-1", nil)
	m := newLoadedMutator(t, remote, nil)

	var wg stdsync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.AddItem(context.Background(), items.NewItem("milk", 1))
		}()
	}
	wg.Wait()

	if remote.replaceCalls != 8 {
		t.Fatalf("expected 8 writes, got %d", remote.replaceCalls)
	}
}
