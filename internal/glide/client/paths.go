package client

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Platform is the host operating system family used for path resolution.
type Platform string

const (
	Windows Platform = "windows"
	MacOS   Platform = "macos"
	Linux   Platform = "linux"
)

// CurrentPlatform maps runtime.GOOS onto a [Platform]. Anything that is not
// Windows or macOS resolves paths the Linux/XDG way.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// EnvSnapshot captures the environment variables the resolver reads, so that
// resolution stays a pure function of its inputs.
func EnvSnapshot() map[string]string {
	return map[string]string{
		"APPDATA":         os.Getenv("APPDATA"),
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
	}
}

// baseDir returns the platform configuration base directory. Environment
// overrides (APPDATA on Windows, XDG_CONFIG_HOME on Linux) take precedence
// over the computed defaults.
func baseDir(platform Platform, env map[string]string, home string) string {
	switch platform {
	case Windows:
		if dir := env["APPDATA"]; dir != "" {
			return dir
		}
		return filepath.Join(home, "AppData", "Roaming")
	case MacOS:
		return filepath.Join(home, "Library", "Application Support")
	default:
		if dir := env["XDG_CONFIG_HOME"]; dir != "" {
			return dir
		}
		return filepath.Join(home, ".config")
	}
}

// ConfigPath returns the absolute path of the given client's MCP configuration
// file. It performs no file access: the result is derived entirely from the
// client, the platform, the environment snapshot, and the home directory.
//
// Most clients live under the platform base directory; Windsurf, Enconvo, and
// Cursor anchor their config directly under the home directory on every
// platform.
func ConfigPath(c Client, platform Platform, env map[string]string, home string) (string, error) {
	base := baseDir(platform, env, home)

	switch c {
	case Claude:
		return filepath.Join(base, "Claude", "claude_desktop_config.json"), nil
	case Cline:
		return filepath.Join(base, "Code", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil
	case RooCline:
		return filepath.Join(base, "Code", "User", "globalStorage",
			"rooveterinaryinc.roo-cline", "settings", "cline_mcp_settings.json"), nil
	case Windsurf:
		return filepath.Join(home, ".codeium", "windsurf", "mcp_config.json"), nil
	case Witsy:
		return filepath.Join(base, "Witsy", "settings.json"), nil
	case Enconvo:
		return filepath.Join(home, ".config", "enconvo", "mcp_config.json"), nil
	case Cursor:
		return filepath.Join(home, ".cursor", "mcp.json"), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidClient, c)
}

// DefaultConfigPath resolves the config path for the current process
// environment.
func DefaultConfigPath(c Client) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return ConfigPath(c, CurrentPlatform(), EnvSnapshot(), home)
}
