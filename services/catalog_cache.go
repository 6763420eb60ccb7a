package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"rental-backend/models"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "catalog:active_items"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogCache keeps the public active-item listing in Redis. A nil
// cache (Redis not configured) and any Redis failure both degrade to
// the database.
type CatalogCache struct {
	rdb *redis.Client
}

func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	if rdb == nil {
		return nil
	}
	return &CatalogCache{rdb: rdb}
}

func (c *CatalogCache) GetItems(ctx context.Context) ([]models.Item, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("warning: catalog cache read failed: %v", err)
		}
		return nil, false
	}
	var items []models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		log.Printf("warning: catalog cache payload invalid, dropping: %v", err)
		_ = c.rdb.Del(ctx, catalogCacheKey).Err()
		return nil, false
	}
	return items, true
}

func (c *CatalogCache) SetItems(ctx context.Context, items []models.Item) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
		log.Printf("warning: catalog cache write failed: %v", err)
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		log.Printf("warning: catalog cache invalidation failed: %v", err)
	}
}
