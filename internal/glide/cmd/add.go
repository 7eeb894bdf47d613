package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glidekit/glide-cli/internal/glide/common"
	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/installer"
	"github.com/glidekit/glide-cli/internal/glide/logging"
	"github.com/glidekit/glide-cli/internal/glide/manifest"
	"github.com/glidekit/glide-cli/internal/glide/registry"
	"github.com/glidekit/glide-cli/internal/glide/util"
)

func buildAddCmd() *cobra.Command {
	var noInstall bool

	cmd := &cobra.Command{
		Use:   "add <component>",
		Short: "Add a Glide registry component to your project",
		Long: `Add a component to your project through the external component installer and
record it in the local manifest.

The component may be a plain name from the Glide registry or a full URL to a
registry item. For URLs the descriptor is fetched first; a failed fetch is
recorded in the manifest but does not stop the install. Only a failure of the
installer itself aborts the run, in which case the manifest is left untouched.

Examples:
  # Add a component by name
  glide add button

  # Add a component from a registry URL
  glide add https://registry.glidekit.dev/r/button.json

  # Add without installing package dependencies
  glide add button --no-install`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runAdd(cmd.Context(), addOptions{
				Identifier:   args[0],
				InstallDeps:  !noInstall,
				ManifestPath: resolveManifestPath(cfg),
			})
		},
	}

	cmd.Flags().BoolVar(&noInstall, "no-install", false, "skip installing package dependencies")

	return cmd
}

type addOptions struct {
	Identifier   string
	InstallDeps  bool
	ManifestPath string
}

// runAdd drives the add workflow: classify the identifier, fetch the registry
// descriptor for URLs, run the external installer, and record the outcome.
func runAdd(ctx context.Context, opts addOptions) error {
	entry := buildManifestEntry(ctx, opts.Identifier)

	runner := installer.New()
	if err := runner.Add(ctx, opts.Identifier, opts.InstallDeps); err != nil {
		return err
	}

	tracker := manifest.New(opts.ManifestPath, warnToLog)
	added, err := tracker.Record(entry)
	if err != nil {
		return err
	}
	if !added {
		fmt.Printf("Component %q is already tracked in %s\n", entry.Name, opts.ManifestPath)
		return nil
	}

	fmt.Printf("✅ Added %q to %s\n", entry.Name, opts.ManifestPath)
	return nil
}

// buildManifestEntry classifies the identifier and, for URLs, attempts the
// registry fetch. Fetch failures degrade to a url_fetch_failed entry; the
// workflow continues either way.
func buildManifestEntry(ctx context.Context, identifier string) manifest.Entry {
	if !isURL(identifier) {
		return manifest.Entry{
			Name:       identifier,
			SourceType: manifest.SourceDirectName,
		}
	}

	spinner := common.NewSpinner(os.Stderr, "Fetching component descriptor...")
	item, err := registry.NewFetcher().Fetch(ctx, identifier)
	spinner.Stop()

	if err != nil {
		logging.Warn("registry fetch failed, continuing with install",
			zap.String("url", identifier), zap.Error(err))
		fmt.Fprintln(os.Stderr, color.YellowString("⚠️  Could not fetch component descriptor: %v", err))

		return manifest.Entry{
			Name:       componentNameFromURL(identifier),
			SourceType: manifest.SourceURLFetchFailed,
			SourceURL:  identifier,
			FetchError: err.Error(),
		}
	}

	return manifest.Entry{
		Name:         item.Name,
		SourceType:   manifest.SourceURLSuccess,
		SourceURL:    identifier,
		RegistryItem: item.Raw,
	}
}

func isURL(identifier string) bool {
	return strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://")
}

// componentNameFromURL derives a display name from a registry URL when the
// descriptor itself could not be fetched.
func componentNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return rawURL
	}
	name := path.Base(u.Path)
	return strings.TrimSuffix(name, path.Ext(name))
}

// resolveManifestPath prefers the --manifest flag over the configured path.
// Tildes and environment variables in either are expanded.
func resolveManifestPath(cfg *config.Config) string {
	if manifestPath != "" {
		return util.ExpandPath(manifestPath)
	}
	if cfg.ManifestPath != "" {
		return util.ExpandPath(cfg.ManifestPath)
	}
	return config.DefaultManifestPath
}
