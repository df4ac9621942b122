package cache

import (
	"context"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/jellydator/ttlcache/v3"
)

// MemoryTokenCache implements TokenCache using ttlcache. Entries expire
// with the token they hold, so the cache never serves a token past its
// validity window.
type MemoryTokenCache struct {
	cache *ttlcache.Cache[string, *domain.AccessToken]
}

// NewMemoryTokenCache creates an in-memory token cache with automatic
// cleanup.
func NewMemoryTokenCache() *MemoryTokenCache {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, *domain.AccessToken](),
	)
	go cache.Start()

	return &MemoryTokenCache{cache: cache}
}

// Set implements TokenCache.Set.
func (c *MemoryTokenCache) Set(_ context.Context, token *domain.AccessToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	c.cache.Set(HashToken(token.AccessToken), token, ttl)
	return nil
}

// Get implements TokenCache.Get.
func (c *MemoryTokenCache) Get(_ context.Context, tokenValue string) (*domain.AccessToken, error) {
	item := c.cache.Get(HashToken(tokenValue))
	if item == nil {
		return nil, ErrCacheMiss
	}
	return item.Value(), nil
}

// Delete implements TokenCache.Delete.
func (c *MemoryTokenCache) Delete(_ context.Context, tokenValue string) error {
	c.cache.Delete(HashToken(tokenValue))
	return nil
}

// Stop terminates the background cleanup goroutine.
func (c *MemoryTokenCache) Stop() {
	c.cache.Stop()
}

var _ TokenCache = (*MemoryTokenCache)(nil)
