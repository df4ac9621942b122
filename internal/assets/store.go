// Package assets provides the local stand-in for the external asset
// pipeline: uploads are written to disk and served from a configured base
// URL. Image optimization itself happens outside this service.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fync-dev/fync-auth/services"
)

// LocalStore implements services.AssetStore on the local filesystem.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a store rooted at dir. Stored files are addressed
// as baseURL/name.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

// OptimizeAndStore persists the raw image under name and returns its URL.
func (s *LocalStore) OptimizeAndStore(_ context.Context, raw []byte, name string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to store asset %q: %w", name, err)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, filepath.Base(name)), nil
}

var _ services.AssetStore = (*LocalStore)(nil)
