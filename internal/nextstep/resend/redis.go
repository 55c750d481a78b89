package resend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "nextstep:otp:last:"
	defaultTTL       = time.Hour
)

// ErrUnavailable wraps every failure talking to Redis.
var ErrUnavailable = errors.New("resend tracker unavailable")

// RedisConfig holds the tracker settings. Zero values fall back to defaults.
type RedisConfig struct {
	KeyPrefix string

	// TTL bounds how long a timestamp is kept. It must exceed the resend delay.
	TTL time.Duration
}

// RedisTracker shares the timestamps between replicas through Redis.
type RedisTracker struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisTracker(client redis.UniversalClient, cfg RedisConfig) *RedisTracker {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisTracker{redis: client, prefix: prefix, ttl: ttl}
}

func (t *RedisTracker) key(k string) string {
	return t.prefix + k
}

func (t *RedisTracker) LastMessage(ctx context.Context, key string) (time.Time, bool, error) {
	micros, err := t.redis.Get(ctx, t.key(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.UnixMicro(micros).UTC(), true, nil
}

func (t *RedisTracker) MarkMessage(ctx context.Context, key string, at time.Time) error {
	if err := t.redis.Set(ctx, t.key(key), at.UnixMicro(), t.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (t *RedisTracker) Ping(ctx context.Context) error {
	if err := t.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
