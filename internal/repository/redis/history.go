package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	tripsdomain "pocketcart/internal/domain/trips"
	"pocketcart/pkg/logger"
)

const historyKeyPrefix = "pocketcart:history:"

// HistoryCache stores each user's cached ranges as fields of one hash so a
// single DEL invalidates all of them.
type HistoryCache struct {
	client *goredis.Client
	log    logger.Logger
}

func NewHistoryCache(client *goredis.Client, log logger.Logger) *HistoryCache {
	return &HistoryCache{client: client, log: logger.OrNop(log)}
}

func (c *HistoryCache) Get(ctx context.Context, userID, key string) (tripsdomain.History, bool) {
	if c == nil || c.client == nil {
		return tripsdomain.History{}, false
	}

	data, err := c.client.HGet(ctx, historyKey(userID), key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("cache.history: get failed", "user_id", userID, "err", err)
		}
		return tripsdomain.History{}, false
	}

	var history tripsdomain.History
	if err := json.Unmarshal(data, &history); err != nil {
		c.log.Warn("cache.history: decode failed", "user_id", userID, "err", err)
		return tripsdomain.History{}, false
	}
	return history, true
}

func (c *HistoryCache) Set(ctx context.Context, userID, key string, history tripsdomain.History, ttl time.Duration) {
	if c == nil || c.client == nil || ttl <= 0 {
		return
	}

	data, err := json.Marshal(history)
	if err != nil {
		c.log.Warn("cache.history: encode failed", "user_id", userID, "err", err)
		return
	}

	hashKey := historyKey(userID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hashKey, key, data)
	pipe.Expire(ctx, hashKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("cache.history: set failed", "user_id", userID, "err", err)
	}
}

func (c *HistoryCache) DeleteByUser(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, historyKey(userID)).Err(); err != nil {
		c.log.Warn("cache.history: invalidate failed", "user_id", userID, "err", err)
	}
}

func historyKey(userID string) string {
	return historyKeyPrefix + userID
}
