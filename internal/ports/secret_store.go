package ports

import (
	"context"
	"errors"
)

var (
	// ErrSecretNotFound means the backend holds no entry for the key.
	ErrSecretNotFound = errors.New("secret not found")
	// ErrSecretReadOnly is returned by backends that can only be read, such as the environment.
	ErrSecretReadOnly = errors.New("secret backend is read-only")
)

// SecretStore holds platform credentials under slash separated keys like "aiprobe/kimi/credential".
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
