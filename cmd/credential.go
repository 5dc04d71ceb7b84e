package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	passstore "github.com/bnema/aiprobe-cli/internal/adapters/secrets/pass"
	"github.com/bnema/aiprobe-cli/internal/domain"
)

func newCredentialCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Store the credentials injected before falling back to manual login",
	}

	cmd.AddCommand(
		newCredentialSetCmd(app),
		newCredentialDeleteCmd(app),
	)

	return cmd
}

func newCredentialSetCmd(app *app) *cobra.Command {
	var (
		platform string
		value    string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save a cookie header, token, or local-storage JSON for a platform (reads stdin without --value)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := credentialKey(cmd, app, platform)
			if err != nil {
				return err
			}

			if value == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read credential from stdin: %w", err)
				}
				value = line
			}
			value = strings.TrimSpace(value)
			if value == "" {
				return fmt.Errorf("credential value is empty")
			}

			if err := app.secrets.Put(cmd.Context(), key, value); err != nil {
				return fmt.Errorf("store credential: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored credential for %s under %s\n", platform, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID")
	cmd.Flags().StringVar(&value, "value", "", "Credential value")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func newCredentialDeleteCmd(app *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a platform's stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := credentialKey(cmd, app, platform)
			if err != nil {
				return err
			}
			if err := app.secrets.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("delete credential: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted credential %s\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform ID")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

// credentialKey is the profile's secret_ref, or the conventional pass entry for the platform.
func credentialKey(cmd *cobra.Command, app *app, platform string) (string, error) {
	profile, err := app.profiles.GetByID(cmd.Context(), domain.PlatformID(strings.ToLower(strings.TrimSpace(platform))))
	if err != nil {
		return "", err
	}
	if profile.Auth.Kind == "" || profile.Auth.Kind == domain.AuthKindNone {
		return "", fmt.Errorf("platform %s does not use credentials", profile.ID)
	}
	if ref := strings.TrimSpace(profile.Auth.SecretRef); ref != "" {
		return ref, nil
	}
	return passstore.KeyFor(string(profile.ID)), nil
}
