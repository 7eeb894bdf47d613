// Package version checks whether a newer glide release is available. The
// check is best-effort: any failure is logged at debug level and never
// affects the command that triggered it.
package version

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/logging"
	"github.com/glidekit/glide-cli/internal/glide/util"
)

// CheckResult contains the result of a version check.
type CheckResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
}

// shouldCheck returns true if enough time has passed since the last check.
// A zero interval disables checking entirely.
func shouldCheck(lastCheckTime time.Time, interval time.Duration) bool {
	if interval == 0 {
		return false
	}
	if lastCheckTime.IsZero() {
		return true
	}
	return time.Now().After(lastCheckTime.Add(interval))
}

// fetchLatestVersion downloads the latest released version string.
func fetchLatestVersion(checkURL string) (string, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(checkURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	version := strings.TrimPrefix(strings.TrimSpace(string(body)), "v")
	if version == "" {
		return "", fmt.Errorf("empty version string in response")
	}
	return version, nil
}

// compareVersions returns true if newVersion is greater than currentVersion.
// Development builds never report an update.
func compareVersions(currentVersion, newVersion string) bool {
	current := strings.TrimPrefix(currentVersion, "v")
	latest := strings.TrimPrefix(newVersion, "v")

	if current == latest {
		return false
	}
	if current == "dev" || current == "unknown" {
		return false
	}

	vCurrent, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	vLatest, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return vLatest.GreaterThan(vCurrent)
}

// Check fetches the latest released version and compares it with the running
// build.
func Check(releasesURL string) (*CheckResult, error) {
	latest, err := fetchLatestVersion(releasesURL)
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		UpdateAvailable: compareVersions(config.Version, latest),
		CurrentVersion:  config.Version,
		LatestVersion:   latest,
	}, nil
}

// MaybePrintUpdateNotice checks for a newer release, respecting the
// configured check interval, and prints a notice to out when one exists.
// Checks are skipped entirely off-TTY and in CI.
func MaybePrintUpdateNotice(out io.Writer, cfg *config.Config) {
	if !util.IsTerminal(out) || util.IsCI() {
		return
	}
	if !shouldCheck(cfg.VersionCheckLastTime, cfg.VersionCheckInterval) {
		return
	}

	if err := config.TouchVersionCheckTime(time.Now()); err != nil {
		logging.Debug("failed to persist version check time", zap.Error(err))
	}

	result, err := Check(cfg.ReleasesURL)
	if err != nil {
		logging.Debug("version check failed", zap.Error(err))
		return
	}
	if result.UpdateAvailable {
		PrintUpdateNotice(out, result)
	}
}

// PrintUpdateNotice writes the update-available message.
func PrintUpdateNotice(out io.Writer, result *CheckResult) {
	fmt.Fprintf(out, "\n%s %s → %s\n",
		color.YellowString("A new release of glide is available:"),
		color.CyanString(result.CurrentVersion),
		color.CyanString(result.LatestVersion),
	)
	fmt.Fprintf(out, "Run %s to upgrade.\n", color.CyanString("npm install -g @glidekit/cli"))
}
