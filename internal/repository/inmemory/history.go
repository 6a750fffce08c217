package inmemory

import (
	"context"
	"sync"
	"time"

	tripsdomain "pocketcart/internal/domain/trips"
)

type HistoryCache struct {
	mu    sync.RWMutex
	users map[string]map[string]historyItem
}

type historyItem struct {
	value     tripsdomain.History
	expiresAt time.Time
}

func NewHistoryCache() *HistoryCache {
	return &HistoryCache{
		users: make(map[string]map[string]historyItem),
	}
}

func (c *HistoryCache) Get(_ context.Context, userID, key string) (tripsdomain.History, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.users[userID][key]
	c.mu.RUnlock()
	if !ok {
		return tripsdomain.History{}, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.users[userID][key]
		if ok && !item.expiresAt.After(now) {
			delete(c.users[userID], key)
		}
		c.mu.Unlock()
		return tripsdomain.History{}, false
	}

	return cloneHistory(item.value), true
}

func (c *HistoryCache) Set(ctx context.Context, userID, key string, history tripsdomain.History, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	entries, ok := c.users[userID]
	if !ok {
		entries = make(map[string]historyItem)
		c.users[userID] = entries
	}
	entries[key] = historyItem{
		value:     cloneHistory(history),
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *HistoryCache) DeleteByUser(_ context.Context, userID string) {
	c.mu.Lock()
	delete(c.users, userID)
	c.mu.Unlock()
}

func cloneHistory(history tripsdomain.History) tripsdomain.History {
	cloned := tripsdomain.History{TotalSpent: history.TotalSpent}
	if history.Trips == nil {
		return cloned
	}
	cloned.Trips = make([]tripsdomain.Trip, len(history.Trips))
	for i, trip := range history.Trips {
		cloned.Trips[i] = trip
		cloned.Trips[i].Items = append(trip.Items[:0:0], trip.Items...)
	}
	return cloned
}
