package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/kindaboxs/meetboxs/pkg/redis"
)

// RedisStore implements RefreshTokenStore using the pkg/redis client
// Expiry is delegated to Redis TTLs, so expired tokens vanish on their own
type RedisStore struct {
	client redis.RedisClient
	ctx    context.Context
}

// NewRedisStore creates a new Redis-backed refresh token store
func NewRedisStore(redisClient redis.RedisClient) *RedisStore {
	return &RedisStore{
		client: redisClient,
		ctx:    context.Background(),
	}
}

func refreshTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID, tokenID)
}

// Save stores a refresh token with its expiry time in Redis
func (s *RedisStore) Save(userID, tokenID, token string, expiry time.Time) error {
	if err := s.client.Set(s.ctx, refreshTokenKey(userID, tokenID), token, time.Until(expiry)); err != nil {
		return fmt.Errorf("failed to save refresh token to Redis: %w", err)
	}
	return nil
}

// Get retrieves a stored refresh token from Redis
func (s *RedisStore) Get(userID, tokenID string) (string, error) {
	token, err := s.client.Get(s.ctx, refreshTokenKey(userID, tokenID))
	if err != nil {
		return "", fmt.Errorf("refresh token not found for user %s, token ID %s: %w", userID, tokenID, err)
	}
	return token, nil
}

// Delete removes a refresh token from Redis storage
func (s *RedisStore) Delete(userID, tokenID string) error {
	if err := s.client.Del(s.ctx, refreshTokenKey(userID, tokenID)); err != nil {
		return fmt.Errorf("failed to delete refresh token from Redis: %w", err)
	}
	return nil
}

// DeleteAll removes all refresh tokens for a user from Redis
func (s *RedisStore) DeleteAll(userID string) error {
	pattern := fmt.Sprintf("refresh_token:%s:*", userID)

	keys, err := s.client.Keys(s.ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to find refresh tokens for user %s: %w", userID, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(s.ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete refresh tokens for user %s: %w", userID, err)
	}

	return nil
}
