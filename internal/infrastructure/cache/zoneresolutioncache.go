package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshvale-inc/freshvale/internal/application/serviceability/usecases"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

const (
	resolutionKeyPrefix = "zone:resolution:"
	maxResolutionTTL    = 30 * time.Minute
)

// RedisZoneResolutionCache implements the resolution cache on Redis. Values
// are JSON; the TTL is supplied per entry by the resolver, already clamped to
// the matched override's expiry so a stale override can never serve from
// cache.
type RedisZoneResolutionCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisZoneResolutionCache(client *redis.Client, logger logger.Interface) usecases.ResolutionCache {
	return &RedisZoneResolutionCache{
		client: client,
		logger: logger,
	}
}

func resolutionKey(addressID uint, vertical string) string {
	return fmt.Sprintf("%s%d:%s", resolutionKeyPrefix, addressID, vertical)
}

func (c *RedisZoneResolutionCache) Get(ctx context.Context, addressID uint, vertical string) (*usecases.CachedResolution, error) {
	data, err := c.client.Get(ctx, resolutionKey(addressID, vertical)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resolution cache: %w", err)
	}

	var cached usecases.CachedResolution
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warnw("corrupt resolution cache entry, dropping",
			"address_id", addressID, "vertical", vertical, "error", err)
		c.client.Del(ctx, resolutionKey(addressID, vertical))
		return nil, nil
	}

	return &cached, nil
}

func (c *RedisZoneResolutionCache) Set(ctx context.Context, addressID uint, vertical string, res usecases.CachedResolution, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if ttl > maxResolutionTTL {
		ttl = maxResolutionTTL
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	if err := c.client.Set(ctx, resolutionKey(addressID, vertical), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write resolution cache: %w", err)
	}
	return nil
}
