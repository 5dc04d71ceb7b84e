package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/aiprobe-cli/internal/adapters/render/summary"
	sessionfile "github.com/bnema/aiprobe-cli/internal/adapters/session/file"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect, clear, or establish stored login sessions",
	}

	cmd.AddCommand(
		newSessionStatusCmd(app),
		newSessionClearCmd(app),
		newSessionLoginCmd(app),
	)

	return cmd
}

func newSessionStatusCmd(app *app) *cobra.Command {
	var (
		platform string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether each platform has a fresh stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := sessionTargets(cmd, app, platform)
			if err != nil {
				return err
			}

			store, err := app.sessionStore()
			if err != nil {
				return err
			}

			now := app.clock.Now()
			statuses := make([]summary.SessionStatus, 0, len(ids))
			for _, id := range ids {
				status, err := inspectSession(cmd, store, id, now)
				if err != nil {
					return err
				}
				statuses = append(statuses, status)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Sessions(statuses))
			return err
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID (default: all platforms)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionClearCmd(app *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a platform's stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := sessionTargets(cmd, app, platform)
			if err != nil {
				return err
			}

			store, err := app.sessionStore()
			if err != nil {
				return err
			}

			for _, id := range ids {
				if err := store.Delete(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared session for %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func newSessionLoginCmd(app *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open the platform, complete login (manually if needed), and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ids, err := sessionTargets(cmd, app, platform)
			if err != nil {
				return err
			}
			id := ids[0]

			rt, err := app.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx, app.logger)

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Opening %s; finish the login in the browser window if prompted.\n", id)
			state, err := rt.orchestrator.Login(ctx, id)
			if err != nil {
				return fmt.Errorf("login to %s: %w", id, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, session stored\n", id, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

// sessionTargets resolves --platform to a known profile id, or every profile when empty.
func sessionTargets(cmd *cobra.Command, app *app, platform string) ([]domain.PlatformID, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform != "" {
		profile, err := app.profiles.GetByID(cmd.Context(), domain.PlatformID(platform))
		if err != nil {
			return nil, err
		}
		return []domain.PlatformID{profile.ID}, nil
	}

	profiles, err := app.profiles.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	ids := make([]domain.PlatformID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func inspectSession(cmd *cobra.Command, store *sessionfile.Store, id domain.PlatformID, now time.Time) (summary.SessionStatus, error) {
	status := summary.SessionStatus{Platform: id}

	record, err := store.Inspect(cmd.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		status.State = summary.SessionMissing
		return status, nil
	case errors.Is(err, domain.ErrSessionCorrupt):
		status.State = summary.SessionCorrupt
		status.Detail = err.Error()
		return status, nil
	case err != nil:
		return summary.SessionStatus{}, err
	}

	status.SavedAt = record.CreatedAt
	status.Expires = record.CreatedAt.Add(domain.SessionMaxAge)
	status.Cookies = len(record.Cookies)
	status.Model = record.Model
	status.State = summary.SessionStale
	if record.IsFresh(now) {
		status.State = summary.SessionFresh
	}
	return status, nil
}
