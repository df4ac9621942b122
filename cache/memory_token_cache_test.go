package cache

import (
	"context"
	"testing"
	"time"

	"github.com/fync-dev/fync-auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenCacheRoundTrip(t *testing.T) {
	c := NewMemoryTokenCache()
	defer c.Stop()
	ctx := context.Background()

	token := &domain.AccessToken{
		AccessToken: "tok-abc",
		TokenType:   domain.TokenTypeBearer,
		UserID:      "user-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, c.Set(ctx, token))

	cached, err := c.Get(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cached.UserID)

	_, err = c.Get(ctx, "other")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Delete(ctx, "tok-abc"))
	_, err = c.Get(ctx, "tok-abc")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryTokenCacheRejectsExpired(t *testing.T) {
	c := NewMemoryTokenCache()
	defer c.Stop()
	ctx := context.Background()

	// An already-expired token is never cached.
	expired := &domain.AccessToken{
		AccessToken: "tok-old",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}
	require.NoError(t, c.Set(ctx, expired))

	_, err := c.Get(ctx, "tok-old")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestHashToken(t *testing.T) {
	a := HashToken("tok-abc")
	b := HashToken("tok-abc")
	other := HashToken("tok-def")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	// sha256 hex digest.
	assert.Len(t, a, 64)
}
