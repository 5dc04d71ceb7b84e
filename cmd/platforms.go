package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	profilesrepo "github.com/bnema/aiprobe-cli/internal/adapters/repo/profiles"
	"github.com/bnema/aiprobe-cli/internal/adapters/render/summary"
)

func newPlatformsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "platforms",
		Short: "List configured platform profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				for i := range profiles {
					if profiles[i].Auth.Value != "" {
						profiles[i].Auth.Value = "<redacted>"
					}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(profiles)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Profiles(profiles))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.AddCommand(newPlatformsInitCmd(app))

	return cmd
}

func newPlatformsInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in profiles to the profiles file for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.profiles.Init(cmd.Context(), force); err != nil {
				if errors.Is(err, profilesrepo.ErrExists) {
					return fmt.Errorf("%w (use --force to overwrite)", err)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote built-in profiles to %s\n", app.profiles.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing profiles file")

	return cmd
}
