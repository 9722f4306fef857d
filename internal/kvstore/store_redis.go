package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"harborbank/pkg/platform/sentinel"
)

const redisKeyPrefix = "harborbank:kv:"

// Redis stores values as plain Redis strings without expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing client. The client lifecycle is managed by
// the caller.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", errors.Join(sentinel.ErrUnavailable, err)
	}
	return v, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return nil
}
