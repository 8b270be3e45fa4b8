package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyProduct = "catalog:product:%d"

// ProductEntry is the resolved catalog data cached per product.
type ProductEntry struct {
	SellerID   string  `json:"seller_id"`
	FinalPrice float64 `json:"final_price"`
}

// ProductCache is a TTL cache over redis for catalog lookups. A nil
// ProductCache is valid and disables caching, so callers never need to
// branch on configuration.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(addr string, ttl time.Duration) *ProductCache {
	if addr == "" {
		return nil
	}
	return &ProductCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func (c *ProductCache) Get(ctx context.Context, productID uint) (ProductEntry, bool) {
	if c == nil {
		return ProductEntry{}, false
	}
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyProduct, productID)).Bytes()
	if err != nil {
		return ProductEntry{}, false
	}
	var entry ProductEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ProductEntry{}, false
	}
	return entry, true
}

func (c *ProductCache) Set(ctx context.Context, productID uint, entry ProductEntry) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	// Cache fills are best-effort; a failed SET only costs a future DB read.
	_ = c.rdb.Set(ctx, fmt.Sprintf(keyProduct, productID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry after a product mutation.
func (c *ProductCache) Invalidate(ctx context.Context, productID uint) {
	if c == nil {
		return
	}
	_ = c.rdb.Del(ctx, fmt.Sprintf(keyProduct, productID)).Err()
}

func (c *ProductCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
