package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/aiprobe-cli/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			line := version.Version
			if verbose {
				line = version.Describe()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include Go toolchain and commit")

	return cmd
}
