package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gito/internal/prayer"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps schedules in Redis under prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions mirrors the REDIS_* settings.
type RedisOptions struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// NewRedisClient connects and pings, so a bad address fails at startup.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Get(ctx context.Context, key string) (prayer.Schedule, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return prayer.Schedule{}, false, nil
		}
		return prayer.Schedule{}, false, fmt.Errorf("cache get error: %w", err)
	}

	s, err := decode(data)
	if err != nil {
		return prayer.Schedule{}, false, err
	}
	return s, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, s prayer.Schedule, ttl time.Duration) error {
	data, err := encode(s)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}
