package storage

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisOpener stores each slot under cart:<key>. A zero TTL keeps slots
// forever; a positive TTL lets abandoned carts expire.
type RedisOpener struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisOpener(client *redis.Client, ttl time.Duration) *RedisOpener {
	return &RedisOpener{client: client, ttl: ttl}
}

func (o *RedisOpener) Open(key string) Slot {
	return &redisSlot{client: o.client, key: "cart:" + key, ttl: o.ttl}
}

type redisSlot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *redisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return data, nil
}

func (s *redisSlot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}
