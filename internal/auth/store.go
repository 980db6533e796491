package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks live session ids so a signed token can be revoked on sign-out.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps one key per session with the session TTL.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func (s *RedisSessionStore) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, ttl).Err()
}

func (s *RedisSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
