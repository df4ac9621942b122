// Package cache provides a cache for issued access tokens, consulted by
// bearer validation before the document store is hit. Tokens are keyed by
// a hash of their value, never by the value itself.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/fync-dev/fync-auth/domain"
)

// ErrCacheMiss is returned when a token is not in the cache. A miss is not
// a failure; callers fall through to the store.
var ErrCacheMiss = errors.New("token not in cache")

// TokenCache caches issued access tokens by value.
type TokenCache interface {
	Set(ctx context.Context, token *domain.AccessToken) error
	Get(ctx context.Context, tokenValue string) (*domain.AccessToken, error)
	Delete(ctx context.Context, tokenValue string) error
}

// HashToken hashes a token value into a fixed-size cache key.
func HashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}
