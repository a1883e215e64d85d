package observatory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

const snapshotKey = "observatory:m87:snapshot"

// RedisCache stores the most recent archive observation with a TTL so
// repeated pipeline runs don't hammer the upstream.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache builds a cache. A nil logger disables cache logging.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Find returns the cached observation, or sentinel.ErrNotFound when the
// snapshot is absent or expired.
func (c *RedisCache) Find(ctx context.Context) (*Observation, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("m87 snapshot: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read m87 snapshot: %w", err)
	}

	var obs Observation
	if err := json.Unmarshal(raw, &obs); err != nil {
		// A corrupt snapshot is treated as a miss; the next save repairs it.
		c.logger.WarnContext(ctx, "discarding corrupt m87 snapshot", "error", err)
		return nil, fmt.Errorf("m87 snapshot: %w", sentinel.ErrNotFound)
	}
	obs.Source = SourceCache
	return &obs, nil
}

// Save stores the observation under the snapshot TTL.
func (c *RedisCache) Save(ctx context.Context, obs *Observation) error {
	raw, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshal m87 snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write m87 snapshot: %w", err)
	}
	return nil
}
