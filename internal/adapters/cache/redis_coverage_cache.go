package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agro-mission-service/internal/platform/obs"
	"agro-mission-service/internal/ports"
)

const redisCoverageKeyPrefix = "coverage:"

// RedisCoverageCache is a Redis-backed cache of coverage-planner responses.
// Entries expire so planner upgrades propagate without manual invalidation.
type RedisCoverageCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCoverageCache(client *redis.Client, ttl time.Duration) *RedisCoverageCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCoverageCache{Client: client, TTL: ttl}
}

// Fetch a cached planner response. A miss is (zero, false, nil).
func (r *RedisCoverageCache) Get(ctx context.Context, key string) (_ ports.CoverageResult, _ bool, err error) {
	defer obs.Time(ctx, "coverage.rediscache.Get")(&err)

	if r.Client == nil {
		return ports.CoverageResult{}, false, errors.New("redis coverage cache: client is nil")
	}
	if key == "" {
		return ports.CoverageResult{}, false, errors.New("get redis coverage cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisCoverageKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.CoverageResult{}, false, nil
		}
		return ports.CoverageResult{}, false, fmt.Errorf("get redis coverage cache: %w", err)
	}

	var res ports.CoverageResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return ports.CoverageResult{}, false, fmt.Errorf("get redis coverage cache: decode cached result: %w", err)
	}

	return res, true, nil
}

// Store a planner response under the request fingerprint.
func (r *RedisCoverageCache) Put(ctx context.Context, key string, res ports.CoverageResult) error {
	if r.Client == nil {
		return errors.New("redis coverage cache: client is nil")
	}
	if key == "" {
		return errors.New("insert redis coverage cache: key must not be empty")
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("insert redis coverage cache: encode result: %w", err)
	}

	if err := r.Client.Set(ctx, redisCoverageKeyPrefix+key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert redis coverage cache key=%q: %w", key, err)
	}

	return nil
}
