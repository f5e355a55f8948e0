package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/satvik2131/lamars-truck-backend/internal/logger"
	"github.com/satvik2131/lamars-truck-backend/internal/port"
)

const (
	recordListKey = "records:list"

	fieldBody = "body"
	fieldEtag = "etag"
)

var errStaleListing = errors.New("record listing changed while rendering")

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// GetRecordList returns the cached body and its ETag. Both are empty on a miss.
func (c *Cache) GetRecordList(ctx context.Context) ([]byte, string, error) {
	logger.Info(ctx, "getting cached record listing...")

	vals, err := c.client.HMGet(ctx, getCacheKey(false), fieldBody, fieldEtag).Result()
	if err != nil {
		return nil, "", fmt.Errorf("redis get failed: %w", err)
	}
	body, okBody := vals[0].(string)
	etag, okEtag := vals[1].(string)
	if !okBody || !okEtag || etag == "" {
		return nil, "", nil // cache miss
	}
	return []byte(body), etag, nil
}

func (c *Cache) RecordListVersion(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, getCacheKey(true)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failed: %w", err)
	}
	return v, nil
}

// SetRecordList stores body and ETag in one transaction, unless the
// listing version moved away from version in the meantime.
func (c *Cache) SetRecordList(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
	logger.Infof(ctx, "caching record listing v%d for %s...", version, ttl)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, getCacheKey(true)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleListing
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, getCacheKey(false), fieldBody, data, fieldEtag, etag)
			pipe.Expire(ctx, getCacheKey(false), ttl)
			return nil
		})
		return err
	}, getCacheKey(true))

	switch {
	case err == nil:
	case errors.Is(err, errStaleListing), errors.Is(err, redis.TxFailedErr):
		logger.Infof(ctx, "record listing v%d is outdated, not caching it", version)
	default:
		logger.Warnf(ctx, "failed to cache record listing: %v", err)
	}
}

// DeleteRecordList bumps the listing version and drops the cached listing.
func (c *Cache) DeleteRecordList(ctx context.Context) error {
	logger.Info(ctx, "deleting cached record listing...")

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, getCacheKey(true))
		pipe.Del(ctx, getCacheKey(false))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func getCacheKey(version bool) string {
	if version {
		return recordListKey + ":version"
	}
	return recordListKey
}
