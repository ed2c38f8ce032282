package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

// DayCache is the contract the use cases program against. A nil cache is
// a valid no-cache configuration; callers check before dereferencing.
type DayCache interface {
	Get(ctx context.Context, doctorID uint, date time.Time) (*models.Availability, bool)
	Set(ctx context.Context, av *models.Availability)
	Invalidate(ctx context.Context, doctorID uint, date time.Time)
}

// AvailabilityCache keeps whole availability records in Redis, one per
// (doctor, day). It is a pure read optimization: misses and errors both
// fall through to the database, and writers invalidate the day they
// touched. The full record is stored so cached reads carry the same id
// the database would return.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func key(doctorID uint, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", doctorID, date.UTC().Format("2006-01-02"))
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) (*models.Availability, bool) {

	raw, err := c.rdb.Get(ctx, key(doctorID, date)).Result()
	if err != nil {
		return nil, false
	}

	var av models.Availability
	if err := json.Unmarshal([]byte(raw), &av); err != nil {
		return nil, false
	}
	return &av, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	av *models.Availability,
) {

	raw, err := json.Marshal(av)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(av.DoctorID, av.Date), raw, c.ttl)
}

func (c *AvailabilityCache) Invalidate(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) {
	c.rdb.Del(ctx, key(doctorID, date))
}

// Compile-time check
var _ DayCache = (*AvailabilityCache)(nil)
