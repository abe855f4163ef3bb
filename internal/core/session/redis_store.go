package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "token:"

// RedisStore keeps session tokens in Redis so logins survive process
// restarts. Only the token is durable; identities are re-resolved.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(sid string) string { return keyPrefix + sid }

func (s *RedisStore) Get(ctx context.Context, sid string) (string, error) {
	val, err := s.client.Get(ctx, s.key(sid)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: get token: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, sid, token string, ttl time.Duration) error {
	if sid == "" || token == "" {
		return fmt.Errorf("session: missing sid or token")
	}
	if err := s.client.Set(ctx, s.key(sid), token, ttl).Err(); err != nil {
		return fmt.Errorf("session: put token: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session: delete token: %w", err)
	}
	return nil
}
