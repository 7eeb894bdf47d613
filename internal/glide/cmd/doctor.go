package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/glidekit/glide-cli/internal/glide/client"
	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/mcpconfig"
	"github.com/glidekit/glide-cli/internal/glide/util"
)

func buildDoctorCmd() *cobra.Command {
	var configPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor <client>",
		Short: "Verify the installed Glide MCP server entry works",
		Long: `Verify a client's installed Glide MCP server entry by launching it and
listing the tools it advertises.

The entry is read from the client's configuration file, spawned over stdio,
and asked for its tool list through an MCP session. This exercises the exact
command line the client itself would run.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return filterCompletionsByPrefix(client.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			c, err := client.Parse(args[0])
			if err != nil {
				return exitWithCode(ExitInvalidParameters, err)
			}

			installer, err := mcpconfig.NewInstaller(warnToLog)
			if err != nil {
				return err
			}

			path := util.ExpandPath(configPath)
			if path == "" {
				if path, err = installer.ResolvePath(c); err != nil {
					return err
				}
			}

			cfg, err := mcpconfig.Load(path, warnToLog)
			if err != nil {
				return err
			}
			serverCmd, ok := cfg.Server(mcpconfig.ServerName)
			if !ok {
				return fmt.Errorf("no Glide server entry found in %s; run 'glide install %s' first", path, c)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runDoctor(ctx, cmd, c, serverCmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config-path", "", "custom path to the client configuration file")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for the server to respond")

	return cmd
}

// runDoctor spawns the configured server command over stdio and lists its
// tools.
func runDoctor(ctx context.Context, cmd *cobra.Command, c client.Client, serverCmd mcpconfig.ServerCommand) error {
	proc := exec.CommandContext(ctx, serverCmd.Command, serverCmd.Args...)
	proc.Env = os.Environ()
	proc.Stderr = os.Stderr

	mcpClient := sdk.NewClient(&sdk.Implementation{
		Name:    "glide-cli",
		Version: config.Version,
	}, nil)

	session, err := mcpClient.Connect(ctx, &sdk.CommandTransport{Command: proc}, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to the Glide MCP server: %w", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, &sdk.ListToolsParams{})
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s's Glide MCP server responded with %d tool(s)\n\n",
		c.DisplayName(), len(tools.Tools))

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("TOOL", "DESCRIPTION")
	for _, tool := range tools.Tools {
		table.Append(tool.Name, tool.Description)
	}
	return table.Render()
}
