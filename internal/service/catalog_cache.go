package service

import (
	"context"
	"encoding/json"
	"time"

	"fonda-catalogo/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const catalogCacheKey = "catalog:products:active"

// CatalogCache keeps the active product listing in Redis so repeated catalog
// reads skip the database. Cache failures are logged and treated as misses,
// never surfaced to the caller.
type CatalogCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	enabled     bool
	ttl         time.Duration
}

func NewCatalogCache(redisClient *redis.Client, log *logrus.Logger, enabled bool, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		redisClient: redisClient,
		log:         log,
		enabled:     enabled,
		ttl:         ttl,
	}
}

// GetProducts returns the cached listing and whether it was a hit.
func (c *CatalogCache) GetProducts(ctx context.Context) ([]dto.ProductResponse, bool) {
	if !c.enabled {
		return nil, false
	}

	payload, err := c.redisClient.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Failed to read catalog cache: %+v", err)
		}
		return nil, false
	}

	var products []dto.ProductResponse
	if err := json.Unmarshal(payload, &products); err != nil {
		c.log.Warnf("Failed to decode catalog cache, dropping it: %+v", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return products, true
}

func (c *CatalogCache) SetProducts(ctx context.Context, products []dto.ProductResponse) {
	if !c.enabled {
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		c.log.Warnf("Failed to encode catalog cache: %+v", err)
		return
	}
	if err := c.redisClient.Set(ctx, catalogCacheKey, payload, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write catalog cache: %+v", err)
	}
}

// Invalidate drops the cached listing. Called after every mutating write.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.enabled {
		return
	}

	if err := c.redisClient.Del(ctx, catalogCacheKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate catalog cache: %+v", err)
	}
}
