package mcpconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/glidekit/glide-cli/internal/glide/client"
)

// ErrInvalidConfig is returned when the config to merge lacks an mcpServers
// object.
var ErrInvalidConfig = errors.New("config must contain an mcpServers object")

// WarnFunc receives non-fatal problems that the merge engine recovers from,
// such as an existing config file that fails to parse. err may be nil.
type WarnFunc func(msg string, err error)

// Installer merges server entries into client configuration files. Path
// resolution inputs are explicit fields so installs can be exercised for any
// platform without touching process state.
type Installer struct {
	Platform client.Platform
	Env      map[string]string
	Home     string

	// Warn is called when a corrupt existing config is replaced with an
	// empty one. Nil means recover silently.
	Warn WarnFunc
}

// NewInstaller builds an Installer for the current process environment.
func NewInstaller(warn WarnFunc) (*Installer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine home directory: %w", err)
	}
	return &Installer{
		Platform: client.CurrentPlatform(),
		Env:      client.EnvSnapshot(),
		Home:     home,
		Warn:     warn,
	}, nil
}

// ResolvePath returns the config file path the installer would write for the
// given client.
func (ins *Installer) ResolvePath(c client.Client) (string, error) {
	return client.ConfigPath(c, ins.Platform, ins.Env, ins.Home)
}

// Install merges newCfg into the given client's configuration file and
// returns the path written. The client is resolved first; an invalid client
// or an invalid newCfg fails before any file access. Entries in newCfg win on
// name collision; unrelated server entries and unrelated top-level keys in the
// existing file are preserved.
func (ins *Installer) Install(c client.Client, newCfg *ClientConfig) (string, error) {
	path, err := ins.ResolvePath(c)
	if err != nil {
		return "", err
	}
	if err := ins.InstallAt(path, newCfg); err != nil {
		return "", err
	}
	return path, nil
}

// InstallAt is Install with an explicit config file path, used when the
// caller overrides the resolved location.
func (ins *Installer) InstallAt(path string, newCfg *ClientConfig) error {
	if newCfg == nil || newCfg.MCPServers == nil {
		return ErrInvalidConfig
	}

	existing, err := Load(path, ins.Warn)
	if err != nil {
		return err
	}
	existing.merge(newCfg)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create configuration directory: %w", err)
	}

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads a client config file. A missing, empty, or unparsable file
// yields an empty config rather than an error: install availability beats
// strict consistency here, and warn surfaces the recovery to the caller.
// Real I/O errors (permissions and the like) still propagate.
func Load(path string, warn WarnFunc) (*ClientConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewClientConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if len(content) == 0 {
		return NewClientConfig(), nil
	}

	// Client configs are hand-edited; standardize through hujson so comments
	// and trailing commas don't count as corruption.
	std, err := hujson.Standardize(content)
	if err != nil {
		warnf(warn, fmt.Sprintf("existing config at %s is not valid JSON, starting fresh", path), err)
		return NewClientConfig(), nil
	}

	cfg := NewClientConfig()
	if err := json.Unmarshal(std, cfg); err != nil {
		warnf(warn, fmt.Sprintf("existing config at %s has unexpected structure, starting fresh", path), err)
		return NewClientConfig(), nil
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]json.RawMessage{}
	}
	return cfg, nil
}

func warnf(warn WarnFunc, msg string, err error) {
	if warn != nil {
		warn(msg, err)
	}
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash leaves either the old or the new content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
