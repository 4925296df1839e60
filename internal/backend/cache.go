package backend

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the optional read-through cache in front of catalog endpoints.
// A nil Cache on the Client disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects a redis-backed Cache. Keys are namespaced by
// service so several services can share one instance.
func NewRedisCache(addr, service string) Cache {
	return &redisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: service + ":",
	}
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}
