// Package chain resolves platform credentials across several secret backends in order.
package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/aiprobe-cli/internal/adapters/secrets/env"
	passstore "github.com/bnema/aiprobe-cli/internal/adapters/secrets/pass"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

var errNoBackends = errors.New("secret chain has no backends")

// Backend is one named link of the chain. The name only shows up in errors.
type Backend struct {
	Name  string
	Store ports.SecretStore
}

// Store reads from the first backend that has the key and writes to the first writable one.
type Store struct {
	backends []Backend
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, b := range backends {
		if b.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, b.Name)
		}
	}

	return &Store{backends: backends}, nil
}

// NewEnvFirstWithPassFallback lets AIP_* variables override credentials kept in pass.
// An empty passDir leaves pass on its default store.
func NewEnvFirstWithPassFallback(envPrefix, passDir string) (*Store, error) {
	var opts []passstore.Option
	if passDir != "" {
		opts = append(opts, passstore.WithStoreDir(passDir))
	}
	return NewStore(
		Backend{Name: "env", Store: envstore.NewStore(envPrefix)},
		Backend{Name: "pass", Store: passstore.NewStore(opts...)},
	)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for _, b := range s.backends {
		value, err := b.Store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextErr(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}

	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

// Put stops at the first backend that accepts the write. Read-only backends are skipped.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, b := range s.backends {
		err := b.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextErr(err) {
			return err
		}
		if errors.Is(err, ports.ErrSecretReadOnly) {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}

	if len(errs) == 0 {
		return fmt.Errorf("put secret %q: %w", key, ports.ErrSecretReadOnly)
	}
	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

// Delete removes key from every writable backend so a stale copy cannot shadow a later Put.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for _, b := range s.backends {
		err := b.Store.Delete(ctx, key)
		switch {
		case err == nil:
			deleted = true
		case isContextErr(err):
			return err
		case errors.Is(err, ports.ErrSecretReadOnly):
		default:
			errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
		}
	}

	if deleted {
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("delete secret %q: %w", key, ports.ErrSecretReadOnly)
	}
	return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
