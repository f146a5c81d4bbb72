package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eaglebank/signup-service/shared/logger"
	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// A nil client turns every operation into a miss/no-op, so callers need not
// special-case a deployment without Redis.
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
// Pass ttl 0 for keys that should not expire.
func NewViewCache[T any](client *goredis.Client, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl}
}

// Get returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.From(ctx).Warn("view cache read failed", logger.Component("view_cache"), logger.Key(key), logger.Err(err))
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.From(ctx).Warn("view cache entry corrupt", logger.Component("view_cache"), logger.Key(key), logger.Err(err))
		return nil, false
	}
	return &v, true
}

// Set errors are logged rather than returned; a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.From(ctx).Warn("view cache marshal failed", logger.Component("view_cache"), logger.Key(key), logger.Err(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.From(ctx).Warn("view cache write failed", logger.Component("view_cache"), logger.Key(key), logger.Err(err))
	}
}

func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.From(ctx).Warn("view cache delete failed", logger.Component("view_cache"), logger.Key(key), logger.Err(err))
	}
}
