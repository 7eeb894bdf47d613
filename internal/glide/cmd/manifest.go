package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/manifest"
	"github.com/glidekit/glide-cli/internal/glide/util"
)

func buildManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect the component manifest",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(buildManifestListCmd())
	return cmd
}

func buildManifestListCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components recorded in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := resolveManifestPath(cfg)

			tracker := manifest.New(path, warnToLog)
			entries, err := tracker.Load()
			if err != nil {
				return err
			}

			if outputJSON {
				return util.SerializeToJSON(cmd.OutOrStdout(), entries)
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No components tracked in %s\n", path)
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("NAME", "SOURCE", "URL")
			for _, entry := range entries {
				table.Append(entry.Name, string(entry.SourceType), entry.SourceURL)
			}
			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}
