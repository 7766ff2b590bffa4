package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UserCache interface {
	// GetByID returns nil, nil on a cache miss.
	GetByID(ctx context.Context, id uuid.UUID) ([]byte, error)
	Set(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCache struct {
	client *RedisClient
	prefix string
}

func NewUserCache(redisClient *RedisClient) UserCache {
	return &userCache{
		client: redisClient,
		prefix: "user:",
	}
}

func (c *userCache) key(id uuid.UUID) string {
	return c.prefix + id.String()
}

func (c *userCache) GetByID(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (c *userCache) Set(ctx context.Context, id uuid.UUID, data []byte, ttl time.Duration) error {
	return c.client.client.Set(ctx, c.key(id), data, ttl).Err()
}

func (c *userCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.client.Del(ctx, c.key(id)).Err()
}

// NoopUserCache always misses. Used when Redis is disabled.
type NoopUserCache struct{}

var _ UserCache = NoopUserCache{}

func (NoopUserCache) GetByID(context.Context, uuid.UUID) ([]byte, error)          { return nil, nil }
func (NoopUserCache) Set(context.Context, uuid.UUID, []byte, time.Duration) error { return nil }
func (NoopUserCache) Delete(context.Context, uuid.UUID) error                     { return nil }
