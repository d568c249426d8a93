package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyList   = "catalog:active"
	cacheKeySlugFn = "catalog:slug:%s"
)

// Cache is a read-through Redis layer over Catalog. A cache failure is
// logged and the call falls through to the database.
type Cache struct {
	next Catalog
	rdb  *redis.Client
	ttl  time.Duration
	log  *slog.Logger
}

func NewCache(next Catalog, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	// Only the default first page is worth caching.
	if offset != 0 {
		return c.next.ListActive(ctx, limit, offset)
	}

	if raw, err := c.rdb.Get(ctx, cacheKeyList).Bytes(); err == nil {
		var items []Product
		if json.Unmarshal(raw, &items) == nil {
			return items, nil
		}
	} else if err != redis.Nil {
		c.log.Warn("catalog cache read failed", "key", cacheKeyList, "err", err)
	}

	items, err := c.next.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	c.put(ctx, cacheKeyList, items)
	return items, nil
}

func (c *Cache) GetBySlug(ctx context.Context, slug string) (Product, error) {
	key := fmt.Sprintf(cacheKeySlugFn, slug)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var p Product
		if json.Unmarshal(raw, &p) == nil {
			return p, nil
		}
	} else if err != redis.Nil {
		c.log.Warn("catalog cache read failed", "key", key, "err", err)
	}

	p, err := c.next.GetBySlug(ctx, slug)
	if err != nil {
		return Product{}, err
	}
	c.put(ctx, key, p)
	return p, nil
}

// Invalidate drops all catalog keys. Called after admin mutations;
// stock changes during checkout also go through here.
func (c *Cache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, "catalog:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("catalog cache scan failed", "err", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("catalog cache invalidate failed", "err", err)
	}
}

func (c *Cache) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache write failed", "key", key, "err", err)
	}
}
