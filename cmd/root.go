package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the root command. Cancelling ctx aborts in-flight browser work.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logJSON  bool
	)

	rootCmd := &cobra.Command{
		Use:           "aip",
		Short:         "AI Probe CLI (aip): query AI chat front-ends and capture their answers",
		Long:          "aip (AI Probe CLI) drives AI chat web apps through a real browser, keeps their login sessions, runs batches of queries with retries and human pacing, and exports the answers with their cited references.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", app.settings.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", app.settings.LogJSON, "Emit logs as JSON")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return app.configureLogging(cmd.ErrOrStderr(), logLevel, logJSON)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newQueryCmd(app),
		newPlatformsCmd(app),
		newSessionCmd(app),
		newStatsCmd(app),
		newCredentialCmd(app),
	)

	return rootCmd
}
