package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/karyoview/karyoview/pkg/errors"
)

// defaultRedisPrefix namespaces keys in a shared Redis database.
const defaultRedisPrefix = "karyoview:"

// RedisCache stores entries in Redis under a key prefix.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache connects to url (redis://[user:pass@]host:port/db) and pings
// the server.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "redis url")
	}
	c := NewRedisCacheFromClient(redis.NewClient(opts), defaultRedisPrefix)
	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping redis %s", opts.Addr)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "redis get"))
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "redis set"))
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "redis del")
	}
	return nil
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, errors.Wrap(errors.ErrCodeNetwork, err, "redis del")
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, errors.Wrap(errors.ErrCodeNetwork, err, "redis scan")
	}
	return n, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
