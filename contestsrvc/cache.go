package contestsrvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/contestadm/backend/leaderboard"
	"github.com/redis/go-redis/v9"
)

// StandingsCache is a redis-backed read-through cache for unfiltered
// contest standings. Entries expire after a short TTL so a lost
// invalidation can only delay, never corrupt, the leaderboard.
type StandingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStandingsCache(rdb *redis.Client, ttl time.Duration) *StandingsCache {
	return &StandingsCache{rdb: rdb, ttl: ttl}
}

func standingsKey(contestID int64) string {
	return fmt.Sprintf("standings:%d", contestID)
}

func (c *StandingsCache) Get(ctx context.Context, contestID int64) (*leaderboard.Standings, bool) {
	raw, err := c.rdb.Get(ctx, standingsKey(contestID)).Bytes()
	if err != nil {
		return nil, false
	}
	var standings leaderboard.Standings
	if err := json.Unmarshal(raw, &standings); err != nil {
		return nil, false
	}
	return &standings, true
}

func (c *StandingsCache) Set(ctx context.Context, contestID int64, standings leaderboard.Standings) error {
	raw, err := json.Marshal(standings)
	if err != nil {
		return fmt.Errorf("failed to marshal standings: %w", err)
	}
	if err := c.rdb.Set(ctx, standingsKey(contestID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store standings: %w", err)
	}
	return nil
}

func (c *StandingsCache) Invalidate(ctx context.Context, contestID int64) error {
	err := c.rdb.Del(ctx, standingsKey(contestID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to drop standings: %w", err)
	}
	return nil
}
