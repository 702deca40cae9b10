package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/sayanm085/shopnex-api/internal/application/dto"
	"github.com/sayanm085/shopnex-api/internal/application/inventory"
	"github.com/sayanm085/shopnex-api/internal/application/purchasing"
	"github.com/sayanm085/shopnex-api/internal/application/selling"
	"github.com/sayanm085/shopnex-api/pkg/logger"
)

var (
	_ inventory.LookupCache       = (*LookupCache)(nil)
	_ purchasing.CacheInvalidator = (*LookupCache)(nil)
	_ selling.CacheInvalidator    = (*LookupCache)(nil)
)

const lookupKeyPrefix = "lookup:"

// LookupCache stores barcode lookup responses in Redis. A miss returns
// (nil, nil); marshalling or transport errors surface so the caller can log
// and fall through to the database.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New connects a Redis-backed lookup cache. TTL bounds staleness between the
// write-side invalidation calls.
func New(addr, password string, db int, ttl time.Duration, log *logger.Logger) (*LookupCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &LookupCache{client: client, ttl: ttl, log: log}, nil
}

// Close releases the underlying connection pool.
func (c *LookupCache) Close() error {
	return c.client.Close()
}

// Get returns the cached lookup for a barcode, nil on miss.
func (c *LookupCache) Get(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error) {
	val, err := c.client.Get(ctx, lookupKeyPrefix+barcode).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res dto.BarcodeLookupResponse
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Set caches a lookup response under its barcode.
func (c *LookupCache) Set(ctx context.Context, barcode string, res *dto.BarcodeLookupResponse) error {
	if res == nil {
		return nil
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lookupKeyPrefix+barcode, payload, c.ttl).Err()
}

// Invalidate drops cached lookups after a stock-changing settlement. Errors
// are logged only; the settlement already committed.
func (c *LookupCache) Invalidate(ctx context.Context, barcodes ...string) {
	if len(barcodes) == 0 {
		return
	}
	keys := make([]string, 0, len(barcodes))
	for _, b := range barcodes {
		if b == "" {
			continue
		}
		keys = append(keys, lookupKeyPrefix+b)
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Int("keys", len(keys)).Msg("cache invalidation failed")
	}
}
