package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ProductCache is a read-through cache of single products in Redis. A nil
// client turns every method into a no-op.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache creates a ProductCache. client may be nil.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, ttl: ttl}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// Get returns the cached product, if any.
func (c *ProductCache) Get(ctx context.Context, id uint) (*models.Product, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	cached, err := c.client.Get(ctx, productCacheKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Uint("product_id", id).Msg("product cache read failed")
		}
		metrics.RecordCacheLookup(false)
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		metrics.RecordCacheLookup(false)
		return nil, false
	}
	metrics.RecordCacheLookup(true)
	return &product, true
}

// Set stores product for the cache TTL.
func (c *ProductCache) Set(ctx context.Context, product *models.Product) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productCacheKey(product.ID), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Uint("product_id", product.ID).Msg("product cache write failed")
	}
}

// Invalidate drops the cached entries for ids.
func (c *ProductCache) Invalidate(ctx context.Context, ids ...uint) {
	if c == nil || c.client == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productCacheKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Uints("product_ids", ids).Msg("product cache invalidation failed")
	}
}
