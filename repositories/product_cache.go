package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vitalimes-backend/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListPrefix = "products:list:"
	// productListGen is bumped on every invalidation; list keys embed it.
	productListGen = productListPrefix + "gen"
)

// productRecord drops models.Product's flattening MarshalJSON so the cache can
// round-trip the slot state.
type productRecord models.Product

type cachedProduct struct {
	productRecord
	Images [models.ImageSlotCount]*string `json:"images"`
	Video  *string                        `json:"video"`
}

// ProductCache caches list-by-status results. A nil client disables it.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ProductCache {
	return &ProductCache{client: client, ttl: ttl, log: log}
}

func listKey(gen int64, status models.ProductStatus) string {
	return fmt.Sprintf("%s%d:%s", productListPrefix, gen, status)
}

// generation returns the current list generation, 0 before the first invalidation.
func (c *ProductCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, productListGen).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList returns the cached list and the generation it was read under. On a
// miss the generation is still returned so the caller can fill the entry with
// SetList; a fill that races with Invalidate lands under a retired generation.
func (c *ProductCache) GetList(ctx context.Context, status models.ProductStatus) ([]models.Product, int64, bool) {
	if c.client == nil {
		return nil, 0, false
	}

	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("product cache read failed", zap.Error(err))
		return nil, -1, false
	}

	key := listKey(gen, status)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("product cache read failed", zap.Error(err))
		}
		return nil, gen, false
	}

	var cached []cachedProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.log.Warn("product cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, gen, false
	}

	products := make([]models.Product, 0, len(cached))
	for _, cp := range cached {
		p := models.Product(cp.productRecord)
		p.Slots = models.SlotState{Images: cp.Images, Video: cp.Video}
		products = append(products, p)
	}
	return products, gen, true
}

// SetList stores products under gen. A negative gen means the read could not
// determine one and nothing is stored.
func (c *ProductCache) SetList(ctx context.Context, status models.ProductStatus, gen int64, products []models.Product) {
	if c.client == nil || gen < 0 {
		return
	}

	cached := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		cached = append(cached, cachedProduct{productRecord: productRecord(p), Images: p.Slots.Images, Video: p.Slots.Video})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		c.log.Warn("product cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listKey(gen, status), data, c.ttl).Err(); err != nil {
		c.log.Warn("product cache write failed", zap.Error(err))
	}
}

// Invalidate retires the current generation, then drops the list keys it can find.
// Entries missed by the sweep are unreachable and expire with their TTL.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}

	if err := c.client.Incr(ctx, productListGen).Err(); err != nil {
		c.log.Error("product cache generation bump failed", zap.Error(err))
	}

	iter := c.client.Scan(ctx, 0, productListPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == productListGen {
			continue
		}
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.log.Warn("product cache delete failed", zap.String("key", key), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("product cache invalidation failed", zap.Error(err))
	}
}
