package services

import "context"

// PasswordHasher defines an interface for hashing and verifying passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}

// AssetStore is the seam to the external asset pipeline. Registration
// hands raw image bytes over and stores only the resulting URL.
type AssetStore interface {
	OptimizeAndStore(ctx context.Context, raw []byte, name string) (string, error)
}
