package client

import (
	"context"
	"net/http"
	"net/url"

	"pocketcart/internal/domain/items"
	syncdomain "pocketcart/internal/domain/sync"
	tripsdomain "pocketcart/internal/domain/trips"
)

func (c *Client) CurrentTrip(ctx context.Context) (tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	err := c.do(ctx, http.MethodGet, "/api/shopping-trips/current", nil, &trip)
	return trip, err
}

func (c *Client) GetTrip(ctx context.Context, id string) (tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	err := c.do(ctx, http.MethodGet, "/api/shopping-trips/"+url.PathEscape(id), nil, &trip)
	return trip, err
}

func (c *Client) ReplaceTripItems(ctx context.Context, id string, collection items.Collection) (tripsdomain.Trip, error) {
	if collection == nil {
		collection = items.Collection{}
	}
	var trip tripsdomain.Trip
	err := c.do(ctx, http.MethodPut, "/api/shopping-trips/"+url.PathEscape(id), map[string]any{"items": collection}, &trip)
	return trip, err
}

func (c *Client) Checkout(ctx context.Context) (tripsdomain.CheckoutResult, error) {
	var result tripsdomain.CheckoutResult
	err := c.do(ctx, http.MethodPost, "/api/shopping-trips/checkout", nil, &result)
	return result, err
}

// History lists trips between start and end; both empty lists every trip
// that holds at least one item.
func (c *Client) History(ctx context.Context, start, end string) (tripsdomain.History, error) {
	path := "/api/shopping-trips"
	if start != "" || end != "" {
		query := url.Values{}
		query.Set("startDate", start)
		query.Set("endDate", end)
		path += "/history?" + query.Encode()
	}

	var history tripsdomain.History
	err := c.do(ctx, http.MethodGet, path, nil, &history)
	return history, err
}

// Trips exposes shopping trips as a remote store for the mutator.
func (c *Client) Trips() syncdomain.RemoteStore {
	return tripStore{client: c}
}

type tripStore struct {
	client *Client
}

func (s tripStore) Get(ctx context.Context, id string) (syncdomain.Record, error) {
	trip, err := s.client.GetTrip(ctx, id)
	if err != nil {
		return syncdomain.Record{}, err
	}
	return tripRecord(trip), nil
}

func (s tripStore) Replace(ctx context.Context, id string, collection items.Collection) (syncdomain.Record, error) {
	trip, err := s.client.ReplaceTripItems(ctx, id, collection)
	if err != nil {
		return syncdomain.Record{}, err
	}
	return tripRecord(trip), nil
}

func tripRecord(trip tripsdomain.Trip) syncdomain.Record {
	return syncdomain.Record{ID: trip.ID, Items: trip.Items, TotalAmount: trip.TotalAmount}
}
