package trips

import (
	"context"
	"time"
)

// HistoryCache keeps computed history responses per user. Keys are scoped
// to one user so a write can drop every cached range at once.
type HistoryCache interface {
	Get(ctx context.Context, userID, key string) (History, bool)
	Set(ctx context.Context, userID, key string, history History, ttl time.Duration)
	DeleteByUser(ctx context.Context, userID string)
}

type noopHistoryCache struct{}

func (noopHistoryCache) Get(context.Context, string, string) (History, bool) {
	return History{}, false
}

func (noopHistoryCache) Set(context.Context, string, string, History, time.Duration) {}

func (noopHistoryCache) DeleteByUser(context.Context, string) {}
