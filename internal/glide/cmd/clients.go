package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glidekit/glide-cli/internal/glide/client"
	"github.com/glidekit/glide-cli/internal/glide/mcpconfig"
)

func buildClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List supported clients and their configuration paths",
		Long: `List every supported AI client together with the configuration file the
install command would write on this machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			installer, err := mcpconfig.NewInstaller(nil)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("CLIENT", "NAME", "CONFIG PATH")

			for _, c := range client.All() {
				path, err := installer.ResolvePath(c)
				if err != nil {
					return fmt.Errorf("failed to resolve path for %s: %w", c, err)
				}
				table.Append(string(c), c.DisplayName(), path)
			}

			return table.Render()
		},
	}
}
