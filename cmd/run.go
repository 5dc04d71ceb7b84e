package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	csvexport "github.com/bnema/aiprobe-cli/internal/adapters/export/csv"
	historysqlite "github.com/bnema/aiprobe-cli/internal/adapters/history/sqlite"
	"github.com/bnema/aiprobe-cli/internal/adapters/progress/webhook"
	"github.com/bnema/aiprobe-cli/internal/adapters/render/summary"
	"github.com/bnema/aiprobe-cli/internal/application"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

func newRunCmd(app *app) *cobra.Command {
	var (
		queriesPath string
		patterns    []string
		retries     int
		outDir      string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "run --queries FILE",
		Short: "Run a batch of queries against one or more platforms",
		Long:  "Run every query of FILE (CSV query,tag rows or one query per line) on each selected platform, one at a time with randomized pauses, retrying failures, and export one CSV per platform.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			queries, err := readQueries(queriesPath)
			if err != nil {
				return err
			}
			selected, err := selectPlatforms(ctx, app.profiles, patterns)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = app.settings.OutputDir
			}

			history, err := historysqlite.Open(ctx, app.settings.HistoryPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := history.Close(); err != nil {
					app.logger.WarnContext(ctx, "close history", "error", err)
				}
			}()

			rt, err := app.newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx, app.logger)

			var monitorOpts []application.MonitorOption
			if rt.telemetry.Enabled() {
				monitorOpts = append(monitorOpts, application.WithMeterProvider(rt.telemetry.MeterProvider))
			}
			monitor, err := application.NewMonitor(monitorOpts...)
			if err != nil {
				return err
			}

			runner := application.NewBatchRunner(rt.orchestrator, app.batchOptions(outDir, history, monitor)...)

			out := cmd.OutOrStdout()
			var live *summary.Live
			if !asJSON {
				live = summary.StartLive(ctx, out, len(queries)*len(selected))
			}
			report := runner.Run(ctx, application.BatchRequest{
				Queries:    queries,
				Platforms:  selected,
				RetryCount: retries,
				OnProgress: func(p domain.Progress) {
					if live != nil {
						live.Report(p)
					}
				},
			})
			if live != nil {
				if err := live.Stop(); err != nil {
					app.logger.WarnContext(ctx, "stop progress display", "error", err)
				}
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			rendered, err := summary.Render(report)
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}
			_, err = fmt.Fprintln(out, rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&queriesPath, "queries", "", "Queries file (.csv with query,tag columns, or plain text)")
	cmd.Flags().StringArrayVar(&patterns, "platform", nil, "Platform id or glob pattern (repeatable, default: all)")
	cmd.Flags().IntVar(&retries, "retries", app.settings.Batch.RetryCount, "Attempts per query")
	cmd.Flags().StringVar(&outDir, "out", "", "Export directory (default: output.dir)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the run report as JSON")
	_ = cmd.MarkFlagRequired("queries")

	return cmd
}

func (a *app) batchOptions(outDir string, history *historysqlite.History, monitor *application.Monitor) []application.BatchOption {
	batch := a.settings.Batch
	opts := []application.BatchOption{
		application.WithExporter(csvexport.NewExporter(outDir)),
		application.WithHistory(history),
		application.WithMonitor(monitor),
		application.WithBatchClock(a.clock),
		application.WithBatchLogger(a.logger),
		application.WithPacer(application.NewPacer(batch.PaceMin, batch.PaceMax, a.clock)),
		application.WithRetryDelay(batch.RetryDelay),
		application.WithMinResponseLength(batch.MinResponseLength),
	}

	if a.settings.WebhookURL != "" {
		var sinkOpts []webhook.Option
		if a.settings.WebhookToken != "" {
			sinkOpts = append(sinkOpts, webhook.WithHeader("Authorization", "Bearer "+a.settings.WebhookToken))
		}
		opts = append(opts, application.WithProgressSink(webhook.NewSink(a.settings.WebhookURL, sinkOpts...)))
	}
	return opts
}
