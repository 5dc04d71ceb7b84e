package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/aiprobe-cli/internal/ports"
)

// SharedBrowser launches the browser process on first use and hands every caller a fresh
// context on that one process.
type SharedBrowser struct {
	driver ports.Driver
	opts   ports.LaunchOptions
	logger *slog.Logger

	mu      sync.Mutex
	browser ports.Browser
}

var _ ports.Browser = (*SharedBrowser)(nil)

func NewSharedBrowser(driver ports.Driver, opts ports.LaunchOptions, logger *slog.Logger) *SharedBrowser {
	if logger == nil {
		logger = slog.Default()
	}
	return &SharedBrowser{driver: driver, opts: opts, logger: logger}
}

func (s *SharedBrowser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	browser, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	return browser.NewContext(ctx, opts)
}

// Launched reports whether the browser process has been started.
func (s *SharedBrowser) Launched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browser != nil
}

func (s *SharedBrowser) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	if err != nil {
		return fmt.Errorf("close %s browser: %w", s.driver.Name(), err)
	}
	return nil
}

func (s *SharedBrowser) ensure(ctx context.Context) (ports.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		return s.browser, nil
	}

	s.logger.InfoContext(ctx, "launching browser", "driver", s.driver.Name(), "headless", s.opts.Headless, "remote", s.opts.RemoteURL != "")
	browser, err := s.driver.Launch(ctx, s.opts)
	if err != nil {
		return nil, fmt.Errorf("launch %s browser: %w", s.driver.Name(), err)
	}
	s.browser = browser
	return browser, nil
}
