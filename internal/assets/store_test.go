package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "https://assets.test")
	require.NoError(t, err)

	url, err := store.OptimizeAndStore(context.Background(), []byte{0xff, 0xd8}, "profJane1")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.test/profJane1", url)

	raw, err := os.ReadFile(filepath.Join(dir, "profJane1"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, raw)
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "https://assets.test")
	require.NoError(t, err)

	// A name with path separators must not escape the store directory.
	url, err := store.OptimizeAndStore(context.Background(), []byte("x"), "../escape")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.test/escape", url)

	_, err = os.Stat(filepath.Join(dir, "escape"))
	assert.NoError(t, err)
}
