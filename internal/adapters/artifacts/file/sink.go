// Package file stores failure diagnostics (a screenshot and the page markup) on disk.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bnema/aiprobe-cli/internal/domain"
	"github.com/bnema/aiprobe-cli/internal/ports"
)

const (
	artifactDirMode  = 0o700
	artifactFileMode = 0o600
	stampLayout      = "20060102-150405.000"
)

type Sink struct {
	dir    string
	clock  ports.Clock
	logger *slog.Logger
}

var _ ports.DiagnosticsSink = (*Sink)(nil)

type Option func(*Sink)

func WithClock(clock ports.Clock) Option {
	return func(s *Sink) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSink(dir string, opts ...Option) *Sink {
	s := &Sink{
		dir:    filepath.Clean(dir),
		clock:  ports.SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture writes <platform>_<stamp>.png and .html. Failures are logged, never returned.
func (s *Sink) Capture(ctx context.Context, platform domain.PlatformID, page ports.Page) {
	if page == nil {
		return
	}

	logger := s.logger.With("platform", platform)
	if err := os.MkdirAll(s.dir, artifactDirMode); err != nil {
		logger.WarnContext(ctx, "create artifacts directory", "dir", s.dir, "error", err)
		return
	}

	base := filepath.Join(s.dir, fmt.Sprintf("%s_%s", platform, s.clock.Now().UTC().Format(stampLayout)))

	if image, err := page.Screenshot(ctx); err != nil {
		logger.WarnContext(ctx, "capture screenshot", "error", err)
	} else if err := os.WriteFile(base+".png", image, artifactFileMode); err != nil {
		logger.WarnContext(ctx, "write screenshot", "path", base+".png", "error", err)
	}

	if markup, err := page.Content(ctx); err != nil {
		logger.WarnContext(ctx, "capture page content", "error", err)
	} else if err := os.WriteFile(base+".html", []byte(markup), artifactFileMode); err != nil {
		logger.WarnContext(ctx, "write page content", "path", base+".html", "error", err)
	}

	logger.InfoContext(ctx, "captured diagnostics", "base", base, "url", page.URL())
}
