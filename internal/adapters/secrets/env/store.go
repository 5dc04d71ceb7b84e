// Package env resolves secrets from process environment variables.
package env

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

var ErrReadOnly = ports.ErrSecretReadOnly

type lookupFunc func(string) (string, bool)

type Store struct {
	prefix string
	lookup lookupFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	return &Store{prefix: prefix, lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.VarName(key)
	value, ok := s.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("env secret %q (%s): %w", key, name, ports.ErrSecretNotFound)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("put %q: %w", key, ErrReadOnly)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("delete %q: %w", key, ErrReadOnly)
}

// VarName maps "aiprobe/chatgpt/credential" to PREFIX_AIPROBE_CHATGPT_CREDENTIAL.
func (s *Store) VarName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, strings.Trim(key, "/ "))
	if s.prefix == "" {
		return mapped
	}
	return s.prefix + "_" + mapped
}
