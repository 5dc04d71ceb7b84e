package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	historysqlite "github.com/bnema/aiprobe-cli/internal/adapters/history/sqlite"
	"github.com/bnema/aiprobe-cli/internal/adapters/render/summary"
)

func newStatsCmd(app *app) *cobra.Command {
	var (
		asJSON     bool
		pruneOlder time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-platform aggregates over every recorded query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pruneOlder < 0 {
				return fmt.Errorf("--prune-older-than must not be negative")
			}

			history, err := historysqlite.Open(cmd.Context(), app.settings.HistoryPath)
			if err != nil {
				return err
			}
			defer history.Close()

			if pruneOlder > 0 {
				removed, err := history.Prune(cmd.Context(), app.clock.Now().Add(-pruneOlder))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d result(s) older than %s\n", removed, pruneOlder)
			}

			stats, err := history.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			if len(stats) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No queries recorded yet.")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Stats(stats))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().DurationVar(&pruneOlder, "prune-older-than", 0, "Delete recorded results older than this age before reporting (e.g. 720h)")

	return cmd
}
