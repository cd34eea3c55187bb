package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"problem-solver/internal/config"
)

// RedisLocker is a Locker shared by every instance connected to the same Redis
type RedisLocker struct {
	client *redis.Client
	locker *redislock.Client
	ttl    time.Duration
	prefix string
}

// NewRedisLocker connects to Redis and verifies the connection
func NewRedisLocker(ctx context.Context, cfg config.RedisConfig) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	return &RedisLocker{
		client: client,
		locker: redislock.New(client),
		ttl:    ttl,
		prefix: "problem-solver:lock:",
	}, nil
}

// Obtain implements Locker
func (l *RedisLocker) Obtain(ctx context.Context, key string) (func(), error) {
	lk, err := l.locker.Obtain(ctx, l.prefix+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func() {
		// The caller's context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.Warn("Failed to release lock", "key", key, "error", err)
		}
	}, nil
}

// Close closes the Redis connection
func (l *RedisLocker) Close() error {
	return l.client.Close()
}
