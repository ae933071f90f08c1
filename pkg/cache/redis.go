package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	bferrors "github.com/matzehuels/boxflow/pkg/errors"
)

// DefaultRedisPrefix namespaces boxflow keys in a shared Redis database.
const DefaultRedisPrefix = "boxflow:"

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	// URL is a redis:// URL. When set it takes precedence over Addr,
	// Password and DB.
	URL      string
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Defaults to DefaultRedisPrefix.
	Prefix string

	DialTimeout time.Duration
}

// RedisCache stores entries in Redis. Transient network failures are retried
// with the cache's [Backoff].
type RedisCache struct {
	client  *redis.Client
	prefix  string
	backoff Backoff
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	var ro *redis.Options
	if opts.URL != "" {
		parsed, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		ro = parsed
	} else {
		ro = &redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}
	}
	if opts.DialTimeout > 0 {
		ro.DialTimeout = opts.DialTimeout
	}

	c := NewRedisCacheFromClient(redis.NewClient(ro), opts.Prefix)
	err := c.backoff.Do(ctx, func() error {
		return classify(c.client.Ping(ctx).Err())
	})
	if err != nil {
		c.client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", ro.Addr, err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix, backoff: DefaultBackoff}
}

// Get retrieves a value. redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.backoff.Do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return classify(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores a value; Redis expires it after ttl.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.backoff.Do(ctx, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.backoff.Do(ctx, func() error {
		return classify(c.client.Del(ctx, c.prefix+key).Err())
	})
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Clear deletes every key under the cache prefix using SCAN, so other data
// in the same database is left alone.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 500).Result()
		if err != nil {
			return count, fmt.Errorf("redis scan: %w", classify(err))
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return count, fmt.Errorf("redis del: %w", classify(err))
			}
			count += int(n)
		}
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection-level failures as transient network errors.
func classify(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, io.EOF) {
		return Transient(bferrors.Wrap(bferrors.ErrCodeNetwork, err, "redis"))
	}
	return err
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
