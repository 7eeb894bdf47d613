package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/logging"
	"github.com/glidekit/glide-cli/internal/glide/version"
)

var (
	cfgFile      string
	debug        bool
	apiKey       string
	manifestPath string
)

var rootCmd = &cobra.Command{
	Use:   "glide",
	Short: "Glide CLI - install the Glide MCP server and add registry components",
	Long: `Glide CLI configures AI coding assistants to use the Glide MCP server and
adds Glide registry components to your project.

The install command writes the Glide MCP server entry into the configuration
file of a supported client (Claude Desktop, Cline, Roo Cline, Windsurf, Witsy,
Enconvo, Cursor) without touching unrelated entries. The add command installs
a registry component through the external installer and records it in a local
manifest.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(debug); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			logging.Error("failed to load config", zap.Error(err))
			return err
		}

		logging.Debug("CLI initialized",
			zap.String("config_dir", cfg.ConfigDir),
			zap.String("registry_url", cfg.RegistryURL),
			zap.Bool("debug", cfg.Debug),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfg, err := config.Load(); err == nil {
			version.MaybePrintUpdateNotice(os.Stderr, cfg)
		}
		logging.Sync()
	},
}

// Execute runs the root command. Exit-code handling lives in main.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	defaultConfigFile := config.GetConfigFile("")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Glide API key")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "path to the component manifest file")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))

	rootCmd.AddCommand(buildInstallCmd())
	rootCmd.AddCommand(buildAddCmd())
	rootCmd.AddCommand(buildClientsCmd())
	rootCmd.AddCommand(buildManifestCmd())
	rootCmd.AddCommand(buildAuthCmd())
	rootCmd.AddCommand(buildDoctorCmd())
	rootCmd.AddCommand(buildConfigCmd())
	rootCmd.AddCommand(buildVersionCmd())
}

func initConfig() {
	if err := config.SetupViper(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up config: %v\n", err)
		os.Exit(1)
	}

	if debug {
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintln(os.Stderr, "Using config file:", configFile)
		}
	}
}
