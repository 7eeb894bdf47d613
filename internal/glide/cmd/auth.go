package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glidekit/glide-cli/internal/glide/config"
)

func buildAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored Glide API key",
		Long: `Manage the Glide API key used by the install command.

The key is stored in the system keyring when one is available, falling back to
a restricted file under the glide config directory.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(buildAuthSetKeyCmd())
	cmd.AddCommand(buildAuthShowCmd())
	cmd.AddCommand(buildAuthRemoveCmd())
	return cmd
}

func buildAuthSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the Glide API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key := strings.TrimSpace(args[0])
			if key == "" {
				return exitWithCode(ExitInvalidParameters, fmt.Errorf("API key must not be empty"))
			}
			if err := config.StoreAPIKey(key); err != nil {
				return fmt.Errorf("failed to store API key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key stored.")
			return nil
		},
	}
}

func buildAuthShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored Glide API key (masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			key := config.GetAPIKey()
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), maskKey(key))
			return nil
		},
	}
}

func buildAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored Glide API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if err := config.RemoveAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return nil
		},
	}
}

// maskKey hides all but the first and last four characters of a key.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
