// Package cache implements the report cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fintrack/backend/internal/application/adapter"
)

// reportCache implements adapter.ReportCache backed by Redis. Payloads are
// JSON-encoded and expire after the configured TTL; invalidation drops every
// key under the user's prefix so a write never leaves stale reports behind.
type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new Redis-backed report cache.
func NewReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

// cacheKey builds the key for one cached report payload. The user id comes
// before the operation so a single prefix scan covers all of a user's keys.
func cacheKey(operation string, userID uuid.UUID, params string) string {
	return fmt.Sprintf("report:%s:%s:%s", userID, operation, params)
}

// Get loads a cached payload into dest. The first return is false on miss.
func (c *reportCache) Get(ctx context.Context, operation string, userID uuid.UUID, params string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, cacheKey(operation, userID, params)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read report cache: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores a payload under (operation, user, params) with the configured TTL.
func (c *reportCache) Set(ctx context.Context, operation string, userID uuid.UUID, params string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report for cache: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(operation, userID, params), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}

// InvalidateUser drops every cached payload belonging to the user.
func (c *reportCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("report:%s:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan report cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
