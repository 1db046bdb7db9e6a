// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bayaniph/bayani/internal/platform/apperr"
	"github.com/bayaniph/bayani/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] with a key prefix, so one
// implementation backs both password-reset and email-verification tokens.
//
// Expiry is delegated entirely to Redis TTLs; there is no sweeper.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

// NewResetTokenStore creates the store for password-reset tokens.
func NewResetTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: constants.RedisPrefixResetToken}
}

// NewVerificationTokenStore creates the store for email-verification tokens.
func NewVerificationTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, prefix: constants.RedisPrefixVerifyToken}
}

func (store *RedisTokenStore) key(token string) string {
	return store.prefix + token
}

func (store *RedisTokenStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := store.client.Set(ctx, store.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("auth_token_store_set_failed: %w", err)
	}
	return nil
}

func (store *RedisTokenStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := store.client.Get(ctx, store.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Token is invalid or expired")
		}
		return "", fmt.Errorf("auth_token_store_get_failed: %w", err)
	}
	return userID, nil
}

func (store *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := store.client.Del(ctx, store.key(token)).Err(); err != nil {
		return fmt.Errorf("auth_token_store_delete_failed: %w", err)
	}
	return nil
}
