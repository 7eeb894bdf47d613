package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/version"
)

func buildVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, build time, and git commit information for the glide CLI`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("glide %s\n", config.Version)
			fmt.Printf("Build time: %s\n", config.BuildTime)
			fmt.Printf("Git commit: %s\n", config.GitCommit)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)

			if !check {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			result, err := version.Check(cfg.ReleasesURL)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if result.UpdateAvailable {
				version.PrintUpdateNotice(cmd.OutOrStdout(), result)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "glide is up to date.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check whether a newer release is available")
	return cmd
}
