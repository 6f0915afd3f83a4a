package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seat-booking/internal/config"
)

// CacheRefresher drops a venue's cached seat map responses so the next read
// renders the grid as it is now.
type CacheRefresher struct {
	rdb *redis.Client
	cfg config.CacheConfig
}

// NewCacheRefresher returns a Refresher purging cached seat maps, or nil when
// rdb is nil so callers fall back to a no-op.
func NewCacheRefresher(rdb *redis.Client, cfg config.CacheConfig) Refresher {
	if rdb == nil {
		return nil
	}
	return &CacheRefresher{rdb: rdb, cfg: cfg}
}

func (r *CacheRefresher) Refresh(ctx context.Context, venueID uint64) error {
	pattern := r.cfg.VenuePattern(venueID)
	iter := r.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("del cached seat maps of venue %d: %w", venueID, err)
	}
	return nil
}
