package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go-micro.dev/v4/logger"
)

const cacheKey = "vod-catalog:collection"

type collectionFetcher interface {
	FetchCollection(ctx context.Context) ([]Record, error)
}

// CachedClient keeps the last good collection in redis so transient backend
// failures fall back to stale-but-usable data instead of an empty catalog.
type CachedClient struct {
	inner collectionFetcher
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedClient(inner collectionFetcher, rdb *redis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedClient) FetchCollection(ctx context.Context) ([]Record, error) {
	records, err := c.inner.FetchCollection(ctx)
	if err == nil {
		c.store(ctx, records)
		return records, nil
	}

	cached, cacheErr := c.load(ctx)
	if cacheErr != nil {
		return nil, err
	}
	logger.Warnf("Fetch failed, serving %d cached records: %s", len(cached), err)
	return cached, nil
}

func (c *CachedClient) store(ctx context.Context, records []Record) {
	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err = c.rdb.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		logger.Warnf("Cache collection failed: %s", err)
	}
}

func (c *CachedClient) load(ctx context.Context) ([]Record, error) {
	payload, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, err
	}
	var records []Record
	if err = json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}
