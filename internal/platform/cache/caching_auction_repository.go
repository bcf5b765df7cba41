// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tjkspices_backend/internal/feature/auction/domain/entity"
	"tjkspices_backend/internal/feature/auction/usecase"
)

// CachingAuctionRepository decorates an AuctionRepository with Redis caching
// of history reads. The auction archive changes at most once per day, so
// cached ranges are served until the next ingest invalidates them.
type CachingAuctionRepository struct {
	inner     usecase.AuctionRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.AuctionRepository = (*CachingAuctionRepository)(nil)

// NewCachingAuctionRepository decorates an AuctionRepository with Redis
// caching. If ttl is 0 it defaults to 1 hour; an empty namespace defaults to
// "auction".
func NewCachingAuctionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AuctionRepository, namespace string) *CachingAuctionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if namespace == "" {
		namespace = "auction"
	}
	return &CachingAuctionRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// UpsertBatch writes through to the underlying repository and invalidates all
// cached history ranges. Invalidation is best effort.
func (c *CachingAuctionRepository) UpsertBatch(ctx context.Context, records []entity.AuctionRecord) error {
	if err := c.inner.UpsertBatch(ctx, records); err != nil {
		return err
	}
	if c.rdb == nil || len(records) == 0 {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":history:*")
	return nil
}

// History serves a cached range when available, otherwise reads through and
// stores the result.
func (c *CachingAuctionRepository) History(ctx context.Context, from, to string) ([]entity.AuctionRecord, error) {
	if c.rdb == nil {
		return c.inner.History(ctx, from, to)
	}

	key := c.historyKey(from, to)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.AuctionRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Drop the corrupted entry and fall through to the store
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.History(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

func (c *CachingAuctionRepository) historyKey(from, to string) string {
	return fmt.Sprintf("%s:history:%s:%s", c.namespace, safe(from), safe(to))
}

// deleteByPattern deletes all cache keys matching a pattern using SCAN.
func (c *CachingAuctionRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	if s == "" {
		return "-"
	}
	return s
}
