package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKey = "quickmart:transaction:seq"

// RedisSequence allocates transaction numbers from a Redis counter so the
// sequence keeps increasing across restarts. INCR is atomic, so a number is
// never handed out twice even with several processes sharing the counter.
type RedisSequence struct {
	client *redis.Client
}

func NewRedisSequence(client *redis.Client) *RedisSequence {
	return &RedisSequence{client: client}
}

func (r *RedisSequence) Next(ctx context.Context) (int, error) {
	n, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr sequence: %w", err)
	}
	return int(n), nil
}

// Reset rewinds the counter, for tests and fresh installs.
func (r *RedisSequence) Reset(ctx context.Context) error {
	return r.client.Del(ctx, sequenceKey).Err()
}
