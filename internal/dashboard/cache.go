// AngelaMos | 2026
// cache.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/metrics"
)

const countsKeyPrefix = "dashboard:counts:"

type cachedCounts struct {
	Day    string `json:"day"`
	Counts Counts `json:"counts"`
}

// CountsCache keeps each gym's dashboard counts in Redis. An entry is
// only served for the day it was computed on. A nil client disables
// caching.
type CountsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCountsCache(rdb *redis.Client, ttl time.Duration) *CountsCache {
	return &CountsCache{rdb: rdb, ttl: ttl}
}

// GetOrLoad returns cached counts for today or calls load and stores the
// result. Redis failures fall through to load.
func (c *CountsCache) GetOrLoad(
	ctx context.Context,
	gymID string,
	today calendar.Date,
	load func(context.Context) (Counts, error),
) (Counts, error) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return load(ctx)
	}

	key := countsKeyPrefix + gymID

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedCounts
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil && entry.Day == today.String() {
			metrics.RecordCacheLookup(true)
			return entry.Counts, nil
		}
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "dashboard cache read failed",
			"gym_id", gymID,
			"error", err,
		)
	}
	metrics.RecordCacheLookup(false)

	counts, err := load(ctx)
	if err != nil {
		return Counts{}, err
	}

	payload, err := json.Marshal(cachedCounts{Day: today.String(), Counts: counts})
	if err == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			slog.WarnContext(ctx, "dashboard cache write failed",
				"gym_id", gymID,
				"error", setErr,
			)
		}
	}

	return counts, nil
}

// MembersChanged drops the gym's cached counts.
func (c *CountsCache) MembersChanged(ctx context.Context, gymID string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, countsKeyPrefix+gymID).Err(); err != nil {
		slog.WarnContext(ctx, "dashboard cache invalidation failed",
			"gym_id", gymID,
			"error", err,
		)
	}
}
