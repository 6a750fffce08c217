package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pocketcart/internal/config"
	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.ClientConfig{APIURL: srv.URL + "/", Timeout: 5 * time.Second}, logger.Nop())
}

func writeEnvelope(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"code": code, "message": message}})
}

func TestErrorEnvelopeBecomesRemoteError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, "trip_closed", "shopping trip is closed")
	}))

	_, err := c.ReplaceTripItems(context.Background(), "trip-1", nil)

	var remoteErr *syncdomain.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	require.Equal(t, http.StatusConflict, remoteErr.Status)
	require.Equal(t, "trip_closed", remoteErr.Code)
	require.Equal(t, "shopping trip is closed", remoteErr.Message)
}

func TestLoginStoresTokenForLaterCalls(t *testing.T) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"token": "tok-123", "user": map[string]string{"id": "u1", "email": "a@b.c", "name": "A"}})
	})
	mux.HandleFunc("/api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "a@b.c", "name": "A"})
	})
	c := newTestClient(t, mux)

	session, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-123", session.Token)
	require.Equal(t, "tok-123", c.Token())

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "Bearer tok-123", seen)
}

func TestUnauthorizedIsDetected(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
	}))

	_, err := c.CurrentTrip(context.Background())
	require.True(t, syncdomain.IsUnauthorized(err))
}

func TestHistoryQueryUsesRangeEndpoint(t *testing.T) {
	var path, start, end string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		start = r.URL.Query().Get("startDate")
		end = r.URL.Query().Get("endDate")
		_ = json.NewEncoder(w).Encode(tripsdomain.History{Trips: []tripsdomain.Trip{}, TotalSpent: 19.75})
	}))

	history, err := c.History(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Equal(t, "/api/shopping-trips/history", path)
	require.Equal(t, "2024-01-01", start)
	require.Equal(t, "2024-01-31", end)
	require.Equal(t, 19.75, history.TotalSpent)

	_, err = c.History(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, "/api/shopping-trips", path)
}

// tripServer keeps one trip in memory. When dropNext is set it silently
// discards the last item of the next write.
type tripServer struct {
	mu       sync.Mutex
	trip     tripsdomain.Trip
	dropNext bool
}

func (s *tripServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(s.trip)
	case http.MethodPut:
		var body struct {
			Items items.Collection `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeEnvelope(w, http.StatusBadRequest, "invalid_json", "invalid json")
			return
		}
		s.trip.Items = body.Items
		if s.dropNext && len(body.Items) > 0 {
			s.trip.Items = body.Items[:len(body.Items)-1]
			s.dropNext = false
		}
		s.trip.TotalAmount = items.RoundCents(items.Total(s.trip.Items))
		_ = json.NewEncoder(w).Encode(s.trip)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestMutatorReconcilesThroughTripStore(t *testing.T) {
	server := &tripServer{trip: tripsdomain.Trip{ID: "trip-1", Items: items.Collection{}}}
	c := newTestClient(t, server)
	mutator := syncdomain.NewMutator(c.Trips(), nil, logger.Nop())

	_, err := mutator.Load(context.Background(), "trip-1")
	require.NoError(t, err)

	milk := items.Item{ID: "item-1", Name: "Milk", Quantity: items.NumberOf(2), Price: items.NumberOf(1.5), Checked: true}
	result, err := mutator.AddItem(context.Background(), milk)
	require.NoError(t, err)
	require.True(t, result.Reconciled)
	require.NoError(t, result.Warning)
	require.Equal(t, 3.0, items.Total(mutator.Items()))

	server.mu.Lock()
	server.dropNext = true
	server.mu.Unlock()

	bread := items.Item{ID: "item-2", Name: "Bread", Quantity: items.NumberOf(1), Price: items.NumberOf(2), Checked: true}
	result, err = mutator.AddItem(context.Background(), bread)
	require.NoError(t, err)
	require.False(t, result.Reconciled)
	require.ErrorIs(t, result.Warning, syncdomain.ErrReconciliationMismatch)
	require.Len(t, mutator.Items(), 2)
}
