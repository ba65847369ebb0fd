package cache

import (
	"context"
	"patternquiz/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	patternStatsKey   = "stats:patterns"
	driverStatsKey    = "stats:drivers"
	completedStatsKey = "stats:completed"
)

// StatsCache keeps running pattern and driver counts in Redis sorted sets
type StatsCache interface {
	RecordCompletion(ctx context.Context, driver model.Driver, pattern model.Pattern) error
	TopPatterns(ctx context.Context, limit int) ([]model.PatternStat, error)
	TopDrivers(ctx context.Context, limit int) ([]model.PatternStat, error)
	Completed(ctx context.Context) (int, error)
}

type statsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
	}
}

func (c *statsCache) RecordCompletion(ctx context.Context, driver model.Driver, pattern model.Pattern) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, patternStatsKey, 1, string(pattern))
		pipe.ZIncrBy(ctx, driverStatsKey, 1, string(driver))
		pipe.Incr(ctx, completedStatsKey)
		return nil
	})
	return err
}

func (c *statsCache) TopPatterns(ctx context.Context, limit int) ([]model.PatternStat, error) {
	return c.top(ctx, patternStatsKey, limit)
}

func (c *statsCache) TopDrivers(ctx context.Context, limit int) ([]model.PatternStat, error) {
	return c.top(ctx, driverStatsKey, limit)
}

func (c *statsCache) top(ctx context.Context, key string, limit int) ([]model.PatternStat, error) {
	if limit <= 0 {
		return []model.PatternStat{}, nil
	}
	results, err := c.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.PatternStat, len(results))
	for i, z := range results {
		entries[i] = model.PatternStat{
			Key:   z.Member.(string),
			Count: int(z.Score),
			Rank:  i + 1,
		}
	}
	return entries, nil
}

func (c *statsCache) Completed(ctx context.Context) (int, error) {
	n, err := c.client.Get(ctx, completedStatsKey).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
