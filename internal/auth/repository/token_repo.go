// Package repository stores refresh tokens in Redis. A token lives under its
// own key with a TTL equal to the refresh validity, and a per-user index set
// allows revoking everything a user holds.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix   = "auth:refresh:" // auth:refresh:{token} -> user_id
	userTokensPrefix = "auth:user:"    // auth:user:{user_id} -> set of tokens
)

var ErrTokenNotFound = errors.New("refresh token not found")

type TokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenRepository(client *redis.Client, ttl time.Duration) *TokenRepository {
	return &TokenRepository{client: client, ttl: ttl}
}

// Save stores a refresh token for the user. Token and index expire together.
func (r *TokenRepository) Save(ctx context.Context, userID, token string) error {
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.tokenKey(token), userID, r.ttl)
	pipe.SAdd(ctx, r.userKey(userID), token)
	pipe.Expire(ctx, r.userKey(userID), r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Find returns the user id a refresh token belongs to.
func (r *TokenRepository) Find(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find refresh token: %w", err)
	}
	return userID, nil
}

// Delete revokes a single refresh token.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	userID, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.tokenKey(token))
	pipe.SRem(ctx, r.userKey(userID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// DeleteAllForUser revokes every refresh token the user holds, e.g. after an
// administrative delete.
func (r *TokenRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user tokens: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, t := range tokens {
		pipe.Del(ctx, r.tokenKey(t))
	}
	pipe.Del(ctx, r.userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

func (r *TokenRepository) tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func (r *TokenRepository) userKey(userID string) string {
	return userTokensPrefix + userID
}
