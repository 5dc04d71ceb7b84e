// Package pass keeps platform credentials in the pass(1) password store.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

// keyPrefix namespaces every entry aip writes.
const keyPrefix = "aiprobe"

type runner func(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error)

type Store struct {
	run      runner
	storeDir string
}

type Option func(*Store)

// WithStoreDir points pass at a password store other than ~/.password-store.
func WithStoreDir(dir string) Option {
	return func(s *Store) {
		s.storeDir = dir
	}
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	s.run = s.exec
	return s
}

// KeyFor returns the entry holding a platform credential when its profile names no secret_ref.
func KeyFor(platform string) string {
	return keyPrefix + "/" + platform + "/credential"
}

// Get returns the whole entry. Cookie headers and local storage JSON are stored verbatim,
// so the usual first-line-is-the-password rule does not apply.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err != nil {
		return "", wrap("show", key, err, stderr)
	}

	return strings.TrimRight(stdout, "\r\n"), nil
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value = strings.TrimRight(value, "\r\n")
	if value == "" {
		return fmt.Errorf("pass insert %q: empty value", key)
	}

	if _, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key); err != nil {
		return wrap("insert", key, err, stderr)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, stderr, err := s.run(ctx, "", "rm", "--force", key); err != nil {
		return wrap("rm", key, err, stderr)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, stdin string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	if s.storeDir != "" {
		cmd.Env = append(os.Environ(), "PASSWORD_STORE_DIR="+s.storeDir)
	}
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func wrap(op, key string, err error, stderr string) error {
	if strings.Contains(stderr, "is not in the password store") {
		return fmt.Errorf("pass %s %q: %w", op, key, ports.ErrSecretNotFound)
	}
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}
	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}
