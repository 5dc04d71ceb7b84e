// Package file persists per-platform authentication state as encrypted files.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/fsutil"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	storeDirMode    = 0o700
	sessionFileMode = 0o600
	sessionSuffix   = "_session.enc"
)

type Store struct {
	root   string
	key    []byte
	clock  ports.Clock
	logger *slog.Logger
	mu     sync.RWMutex
}

var _ ports.SessionStore = (*Store)(nil)

type Option func(*Store)

func WithClock(clock ports.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(root, secret string, opts ...Option) (*Store, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}

	s := &Store{
		root:   filepath.Clean(root),
		key:    key,
		clock:  ports.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Save(ctx context.Context, platform domain.PlatformID, state domain.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.PathFor(platform)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(toPayload(state, s.clock.Now()))
	if err != nil {
		return fmt.Errorf("encode session %q: %w", platform, err)
	}

	envelope, err := seal(s.key, plaintext)
	if err != nil {
		return fmt.Errorf("encrypt session %q: %w", platform, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fsutil.WriteFileAtomic(path, []byte(envelope), storeDirMode, sessionFileMode); err != nil {
		return fmt.Errorf("write session %q: %w", platform, err)
	}

	return nil
}

func (s *Store) Load(ctx context.Context, platform domain.PlatformID) (domain.SessionRecord, bool) {
	record, err := s.Inspect(ctx, platform)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			s.logger.WarnContext(ctx, "session: discarding unreadable session", "platform", platform, "error", err)
		}
		return domain.SessionRecord{}, false
	}

	if !record.IsFresh(s.clock.Now()) {
		s.logger.InfoContext(ctx, "session: stored session is stale", "platform", platform, "created_at", record.CreatedAt)
		return domain.SessionRecord{}, false
	}

	return record, true
}

// Inspect decrypts the stored record without applying the freshness window.
func (s *Store) Inspect(ctx context.Context, platform domain.PlatformID) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	path, err := s.PathFor(platform)
	if err != nil {
		return domain.SessionRecord{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SessionRecord{}, domain.ErrNoSession
		}
		return domain.SessionRecord{}, fmt.Errorf("read session %q: %w", platform, err)
	}

	plaintext, err := unseal(s.key, string(data))
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("%w: %q: %v", domain.ErrSessionCorrupt, platform, err)
	}

	var payload payloadSchema
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("%w: %q: decode payload: %v", domain.ErrSessionCorrupt, platform, err)
	}
	if payload.Timestamp <= 0 {
		return domain.SessionRecord{}, fmt.Errorf("%w: %q: missing timestamp", domain.ErrSessionCorrupt, platform)
	}

	return fromPayload(platform, payload), nil
}

func (s *Store) Delete(ctx context.Context, platform domain.PlatformID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.PathFor(platform)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session %q: %w", platform, err)
	}

	return nil
}

// PathFor returns <root>/<platform>_session.enc.
func (s *Store) PathFor(platform domain.PlatformID) (string, error) {
	trimmed := strings.TrimSpace(string(platform))
	if trimmed == "" {
		return "", errors.New("platform id is empty")
	}
	if strings.ContainsAny(trimmed, `/\`) || strings.Contains(trimmed, "..") {
		return "", fmt.Errorf("invalid platform id %q", platform)
	}

	return filepath.Join(s.root, trimmed+sessionSuffix), nil
}
