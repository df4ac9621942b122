// Package redis implements the token cache on a shared Redis instance, for
// deployments where multiple auth replicas must agree on cached tokens.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fync-dev/fync-auth/cache"
	"github.com/fync-dev/fync-auth/domain"
	"github.com/redis/go-redis/v9"
)

// TokenCache implements cache.TokenCache using Redis.
type TokenCache struct {
	client *redis.Client
	prefix string
}

// NewTokenCache creates a new TokenCache. prefix namespaces keys so the
// instance can share a Redis database with other services.
func NewTokenCache(client *redis.Client, prefix string) *TokenCache {
	return &TokenCache{client: client, prefix: prefix}
}

func (r *TokenCache) redisKey(tokenValue string) string {
	return fmt.Sprintf("%s:token:%s", r.prefix, cache.HashToken(tokenValue))
}

// Set stores the token as JSON with the token's remaining lifetime as TTL.
func (r *TokenCache) Set(ctx context.Context, token *domain.AccessToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.redisKey(token.AccessToken), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set token in Redis: %w", err)
	}
	return nil
}

// Get retrieves a cached token, or cache.ErrCacheMiss.
func (r *TokenCache) Get(ctx context.Context, tokenValue string) (*domain.AccessToken, error) {
	payload, err := r.client.Get(ctx, r.redisKey(tokenValue)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, cache.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var token domain.AccessToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached token: %w", err)
	}
	return &token, nil
}

// Delete removes a token from the cache.
func (r *TokenCache) Delete(ctx context.Context, tokenValue string) error {
	if err := r.client.Del(ctx, r.redisKey(tokenValue)).Err(); err != nil {
		return fmt.Errorf("failed to delete token from Redis: %w", err)
	}
	return nil
}

var _ cache.TokenCache = (*TokenCache)(nil)
