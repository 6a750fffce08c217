package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pocketcart/internal/client"
	"pocketcart/internal/config"
	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/internal/localstore"
	"pocketcart/pkg/logger"
)

const storedTripID = "6f1c2a9e-6d2b-4f5e-9a43-0c1b2d3e4f50"

// flakyTripServer fails the open-trip lookup and every write but serves the
// stored trip by id.
func flakyTripServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/shopping-trips/current":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"upstream down"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/shopping-trips/"+storedTripID:
			_ = json.NewEncoder(w).Encode(tripsdomain.Trip{
				ID:    storedTripID,
				Items: items.Collection{{ID: "bread", Name: "Bread", Quantity: items.NumberOf(1)}},
			})
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"try later"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCLI(t *testing.T, apiURL string) (*cli, *bytes.Buffer) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	out := &bytes.Buffer{}
	return &cli{
		api:   client.New(config.ClientConfig{APIURL: apiURL, Timeout: 5 * time.Second}, logger.Nop()),
		store: store,
		log:   logger.Nop(),
		out:   out,
	}, out
}

func TestTripAddShowsLocalItemsWhenWriteFails(t *testing.T) {
	srv := flakyTripServer(t)
	c, out := newTestCLI(t, srv.URL)
	ctx := context.Background()
	if err := c.store.SetCurrentTripID(ctx, storedTripID); err != nil {
		t.Fatalf("set trip id: %v", err)
	}

	err := c.trip(ctx, []string{"add", "Milk", "2.50"})
	if !errors.Is(err, syncdomain.ErrRemoteWrite) {
		t.Fatalf("expected ErrRemoteWrite, got %v", err)
	}

	printed := out.String()
	for _, want := range []string{"warning:", "Current trip", "Bread", "Milk", "$2.50"} {
		if !strings.Contains(printed, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, printed)
		}
	}
}

func TestTripShowWithoutKnownTripReportsLookupError(t *testing.T) {
	srv := flakyTripServer(t)
	c, out := newTestCLI(t, srv.URL)

	err := c.trip(context.Background(), []string{"show"})
	var remoteErr *syncdomain.RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 remote error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
