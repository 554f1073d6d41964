package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the currently valid refresh token per user so tokens can
// be rotated on use and revoked. Entries expire with the token itself.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error
	CheckRefreshToken(ctx context.Context, userID uint, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID uint) error
}

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func refreshKey(userID uint) string {
	return fmt.Sprintf("refresh:%d", userID)
}

func (s *RedisTokenStore) SaveRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKey(userID), token, ttl).Err()
}

func (s *RedisTokenStore) CheckRefreshToken(ctx context.Context, userID uint, token string) (bool, error) {
	stored, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

func (s *RedisTokenStore) DeleteRefreshToken(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, refreshKey(userID)).Err()
}
