package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/aiprobe-cli/internal/adapters/render/summary"
	"github.com/bnema/aiprobe-cli/internal/application"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

func newQueryCmd(app *app) *cobra.Command {
	var (
		platform string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "query --platform ID TEXT",
		Short: "Send one query to one platform and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("query text is empty")
			}
			id := domain.PlatformID(strings.ToLower(strings.TrimSpace(platform)))
			if _, err := app.profiles.GetByID(ctx, id); err != nil {
				return err
			}

			rt, err := app.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx, app.logger)

			var result domain.QueryResult
			if asJSON {
				result = rt.orchestrator.RunQuery(ctx, id, text)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			work := func(ctx context.Context, status func(string)) error {
				ctx = application.WithStageFunc(ctx, func(_ domain.PlatformID, stage application.Stage) {
					status(string(stage))
				})
				result = rt.orchestrator.RunQuery(ctx, id, text)
				return nil
			}
			label := fmt.Sprintf("%s:", id)
			if err := runWithSpinner(ctx, cmd.ErrOrStderr(), label, work); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), summary.Result(result)); err != nil {
				return err
			}
			if !result.Succeeded() {
				return fmt.Errorf("query on %s failed (%s): %s", id, result.ErrorKind, result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the result as JSON")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}
