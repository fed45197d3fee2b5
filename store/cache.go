package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetdesk/driver-portal/calendar"
	"github.com/fleetdesk/driver-portal/models"
	"github.com/fleetdesk/driver-portal/utils"
)

// CachedAvailability is a read-through Redis cache in front of an
// AvailabilityStore. Week views hit the same range over and over while a
// driver navigates, so range results are cached briefly. Cache keys carry a
// per-driver version that Create bumps, which invalidates every cached
// range for that driver without scanning keys. Redis trouble degrades to
// the inner store.
type CachedAvailability struct {
	inner calendar.AvailabilityStore
	rdb   *redis.Client
	ttl   time.Duration
}

var _ calendar.AvailabilityStore = (*CachedAvailability)(nil)

func NewCachedAvailability(inner calendar.AvailabilityStore, rdb *redis.Client, ttl time.Duration) *CachedAvailability {
	return &CachedAvailability{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedAvailability) QueryRange(ctx context.Context, driverID uint, from, to time.Time) ([]models.AvailabilityBlock, error) {
	key := c.rangeKey(ctx, driverID, from, to)
	if key != "" {
		cached, err := c.rdb.Get(ctx, key).Result()
		if err == nil {
			var blocks []models.AvailabilityBlock
			if err := json.Unmarshal([]byte(cached), &blocks); err == nil {
				return blocks, nil
			}
		} else if err != redis.Nil {
			log.Printf("availability cache read failed: %v", err)
		}
	}

	blocks, err := c.inner.QueryRange(ctx, driverID, from, to)
	if err != nil {
		return nil, err
	}
	if key != "" {
		if payload, err := json.Marshal(blocks); err == nil {
			if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				log.Printf("availability cache write failed: %v", err)
			}
		}
	}
	return blocks, nil
}

func (c *CachedAvailability) Create(ctx context.Context, driverID uint, date time.Time, startTime, endTime string, available bool, note string) (*models.AvailabilityBlock, error) {
	block, err := c.inner.Create(ctx, driverID, date, startTime, endTime, available, note)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Incr(ctx, versionKey(driverID)).Err(); err != nil {
		log.Printf("availability cache invalidation failed: %v", err)
	}
	return block, nil
}

// rangeKey builds the cache key for a range query, or "" when the driver
// version cannot be read (caching is then skipped for this call).
func (c *CachedAvailability) rangeKey(ctx context.Context, driverID uint, from, to time.Time) string {
	ver, err := c.rdb.Get(ctx, versionKey(driverID)).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("availability cache version read failed: %v", err)
		return ""
	}
	return fmt.Sprintf("availability:%d:%d:%s:%s",
		driverID, ver, from.Format(utils.DateLayout), to.Format(utils.DateLayout))
}

func versionKey(driverID uint) string {
	return fmt.Sprintf("availability:ver:%d", driverID)
}
