package platforms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/aiprobe-cli/internal/domain"
)

type loginMachine struct {
	logger *slog.Logger
	state  domain.LoginState
	trail  []domain.LoginState
}

func newLoginMachine(logger *slog.Logger) *loginMachine {
	return &loginMachine{logger: logger, state: domain.LoginStateUnknown}
}

func (m *loginMachine) to(ctx context.Context, next domain.LoginState) {
	if !m.state.CanTransition(next) {
		m.logger.WarnContext(ctx, "unexpected login transition", "from", m.state, "to", next)
	}
	m.logger.DebugContext(ctx, "login state", "from", m.state, "to", next)
	m.state = next
	m.trail = append(m.trail, next)
}

// HandleLogin runs the login state machine: check the UI, inject a stored credential when one
// is configured, then wait for a manual login up to the profile's login timeout.
func (s *site) HandleLogin(ctx context.Context) (domain.LoginState, error) {
	m := newLoginMachine(s.logger)
	defer func() { s.loginTrail = m.trail }()

	m.to(ctx, domain.LoginStateCheckingUI)
	if s.IsLoggedIn(ctx) {
		m.to(ctx, domain.LoginStateLoggedIn)
		return m.state, nil
	}

	if s.profile.Auth.HasCredential() {
		m.to(ctx, domain.LoginStateInjectingCredentials)
		if s.tryCredential(ctx) {
			m.to(ctx, domain.LoginStateLoggedIn)
			return m.state, nil
		}
	}

	m.to(ctx, domain.LoginStateAwaitingManualLogin)
	if err := s.awaitManualLogin(ctx); err != nil {
		m.to(ctx, domain.LoginStateLoginFailed)
		return m.state, err
	}

	m.to(ctx, domain.LoginStateLoggedIn)
	return m.state, nil
}

func (s *site) tryCredential(ctx context.Context) bool {
	cred, err := s.credential(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "credential unavailable", "error", err)
		return false
	}

	s.authSignal.Store(false)
	if err := s.injectCredential(ctx, cred); err != nil {
		s.logger.WarnContext(ctx, "credential injection failed", "kind", s.profile.Auth.Kind, "error", err)
		return false
	}
	if err := s.page.Reload(ctx, s.navigationTimeout()); err != nil {
		s.logger.WarnContext(ctx, "reload after injection incomplete", "error", err)
	}

	if s.IsLoggedIn(ctx) {
		return true
	}
	if s.authSignal.Load() {
		s.logger.InfoContext(ctx, "login corroborated by authenticated api response", "pattern", s.profile.Auth.APIPattern)
		return true
	}
	s.logger.InfoContext(ctx, "injected credential not accepted")
	return false
}

func (s *site) awaitManualLogin(ctx context.Context) error {
	timeout := s.loginTimeout()
	clock := s.deps.Clock
	deadline := clock.Now().Add(timeout)
	s.logger.InfoContext(ctx, "waiting for manual login", "url", s.profile.URL, "timeout", timeout)

	for {
		if s.IsLoggedIn(ctx) {
			return nil
		}
		if !clock.Now().Before(deadline) {
			return fmt.Errorf("%w: no logged-in marker within %s", domain.ErrLoginFailed, timeout)
		}
		if err := clock.Sleep(ctx, loginPollInterval); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
		}
	}
}
