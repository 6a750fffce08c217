package client

import (
	"context"
	"net/http"
	"net/url"

	"pocketcart/internal/domain/items"
	listsdomain "pocketcart/internal/domain/lists"
	syncdomain "pocketcart/internal/domain/sync"
)

func (c *Client) ListLists(ctx context.Context) ([]listsdomain.List, error) {
	var found []listsdomain.List
	err := c.do(ctx, http.MethodGet, "/api/shopping-lists", nil, &found)
	return found, err
}

func (c *Client) CreateList(ctx context.Context, name string) (listsdomain.List, error) {
	var list listsdomain.List
	err := c.do(ctx, http.MethodPost, "/api/shopping-lists", map[string]any{
		"name":  name,
		"items": items.Collection{},
	}, &list)
	return list, err
}

func (c *Client) GetList(ctx context.Context, id string) (listsdomain.List, error) {
	var list listsdomain.List
	err := c.do(ctx, http.MethodGet, "/api/shopping-lists/"+url.PathEscape(id), nil, &list)
	return list, err
}

func (c *Client) ReplaceListItems(ctx context.Context, id string, collection items.Collection) (listsdomain.List, error) {
	if collection == nil {
		collection = items.Collection{}
	}
	var list listsdomain.List
	err := c.do(ctx, http.MethodPut, "/api/shopping-lists/"+url.PathEscape(id), map[string]any{"items": collection}, &list)
	return list, err
}

func (c *Client) DeleteList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/shopping-lists/"+url.PathEscape(id), nil, nil)
}

// Lists exposes shopping lists as a remote store for the mutator.
func (c *Client) Lists() syncdomain.RemoteStore {
	return listStore{client: c}
}

type listStore struct {
	client *Client
}

func (s listStore) Get(ctx context.Context, id string) (syncdomain.Record, error) {
	list, err := s.client.GetList(ctx, id)
	if err != nil {
		return syncdomain.Record{}, err
	}
	return listRecord(list), nil
}

func (s listStore) Replace(ctx context.Context, id string, collection items.Collection) (syncdomain.Record, error) {
	list, err := s.client.ReplaceListItems(ctx, id, collection)
	if err != nil {
		return syncdomain.Record{}, err
	}
	return listRecord(list), nil
}

func listRecord(list listsdomain.List) syncdomain.Record {
	return syncdomain.Record{ID: list.ID, Name: list.Name, Items: list.Items}
}
