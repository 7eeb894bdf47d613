package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/glidekit/glide-cli/internal/glide/client"
	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/logging"
	"github.com/glidekit/glide-cli/internal/glide/mcpconfig"
	"github.com/glidekit/glide-cli/internal/glide/util"
)

func buildInstallCmd() *cobra.Command {
	var noBackup bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "install [client]",
		Short: "Install the Glide MCP server configuration for a client",
		Long: fmt.Sprintf(`Install the Glide MCP server configuration for a supported AI client.

The command resolves the client's configuration file for the current platform,
merges in the Glide server entry, and writes the result back. Existing server
entries and unrelated configuration keys are preserved. A backup of the
existing file is created by default.

%s
When no API key is given, the stored key from 'glide auth set-key' is used;
without either, a YOUR_API_KEY placeholder is written for you to fill in.

Examples:
  # Interactive client selection
  glide install

  # Install for Cursor with an API key
  glide install cursor --api-key glide_abc123

  # Install without creating a backup
  glide install claude --no-backup

  # Use a custom configuration file path
  glide install cline --config-path ~/custom/config.json`, supportedClientsHelp()),
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return filterCompletionsByPrefix(client.Names(), toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var clientName string
			if len(args) == 0 {
				if !util.IsTerminal(cmd.OutOrStdout()) {
					return exitWithCode(ExitInvalidParameters,
						fmt.Errorf("no client specified (supported clients: %v)", client.Names()))
				}
				var err error
				clientName, err = selectClientInteractively(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("failed to select client: %w", err)
				}
			} else {
				clientName = args[0]
			}

			return runInstall(installOptions{
				ClientName:   clientName,
				APIKey:       resolveAPIKey(),
				CreateBackup: !noBackup,
				ConfigPath:   configPath,
				Out:          cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip creating a backup of the existing configuration")
	cmd.Flags().StringVar(&configPath, "config-path", "", "custom path to the client configuration file")

	return cmd
}

type installOptions struct {
	ClientName   string
	APIKey       string
	CreateBackup bool
	ConfigPath   string
	Out          io.Writer
}

// runInstall performs the full install flow: resolve, back up, merge, write.
func runInstall(opts installOptions) error {
	c, err := client.Parse(opts.ClientName)
	if err != nil {
		return exitWithCode(ExitInvalidParameters, err)
	}

	installer, err := mcpconfig.NewInstaller(warnToLog)
	if err != nil {
		return err
	}

	configPath := util.ExpandPath(opts.ConfigPath)
	if configPath == "" {
		configPath, err = installer.ResolvePath(c)
		if err != nil {
			return exitWithCode(ExitInvalidParameters, err)
		}
	}

	logging.Debug("installing Glide MCP server configuration",
		zap.String("client", string(c)),
		zap.String("config_path", configPath),
		zap.Bool("create_backup", opts.CreateBackup),
	)

	var backupPath string
	if opts.CreateBackup {
		backupPath, err = createConfigBackup(configPath)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	serverCmd := mcpconfig.DefaultServerCommand(opts.APIKey, installer.Platform)
	newCfg := mcpconfig.NewClientConfig()
	if err := newCfg.SetServer(mcpconfig.ServerName, serverCmd); err != nil {
		return err
	}

	if err := installer.InstallAt(configPath, newCfg); err != nil {
		if errors.Is(err, mcpconfig.ErrInvalidConfig) {
			return exitWithCode(ExitInvalidParameters, err)
		}
		return err
	}

	fmt.Fprintf(opts.Out, "✅ Installed Glide MCP server configuration for %s\n", c.DisplayName())
	fmt.Fprintf(opts.Out, "📁 Configuration file: %s\n", configPath)
	if backupPath != "" {
		fmt.Fprintf(opts.Out, "💾 Backup created: %s\n", backupPath)
	}
	if opts.APIKey == "" {
		fmt.Fprintf(opts.Out, "🔑 No API key configured; replace %s in the config or run 'glide auth set-key'\n",
			mcpconfig.APIKeyPlaceholder)
	}
	fmt.Fprintf(opts.Out, "\nRestart %s to load the new configuration.\n", c.DisplayName())

	return nil
}

// resolveAPIKey prefers the --api-key flag (bound through viper alongside
// GLIDE_API_KEY), falling back to the key stored by 'glide auth set-key'.
func resolveAPIKey() string {
	if key := viper.GetString("api_key"); key != "" {
		return key
	}
	return config.GetAPIKey()
}

func warnToLog(msg string, err error) {
	logging.Warn(msg, zap.Error(err))
}

// createConfigBackup copies the existing configuration file aside and returns
// the backup path, or "" when there is nothing to back up.
func createConfigBackup(configPath string) (string, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		logging.Debug("no existing configuration file found, skipping backup")
		return "", nil
	}

	backupPath := fmt.Sprintf("%s.backup.%d", configPath, time.Now().Unix())

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read original config file: %w", err)
	}
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	logging.Debug("created configuration backup", zap.String("backup_path", backupPath))
	return backupPath, nil
}

func supportedClientsHelp() string {
	result := "Supported Clients:\n"
	for _, c := range client.All() {
		result += fmt.Sprintf("  %-12s %s\n", string(c), c.DisplayName())
	}
	return result
}
