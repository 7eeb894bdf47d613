package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	RegistryURL          string        `mapstructure:"registry_url" json:"registry_url" yaml:"registry_url"`
	ReleasesURL          string        `mapstructure:"releases_url" json:"releases_url" yaml:"releases_url"`
	ManifestPath         string        `mapstructure:"manifest_path" json:"manifest_path" yaml:"manifest_path"`
	Debug                bool          `mapstructure:"debug" json:"debug" yaml:"debug"`
	ConfigDir            string        `mapstructure:"config_dir" json:"config_dir" yaml:"-"`
	VersionCheckInterval time.Duration `mapstructure:"version_check_interval" json:"version_check_interval" yaml:"version_check_interval"`
	VersionCheckLastTime time.Time     `mapstructure:"version_check_last_time" json:"version_check_last_time" yaml:"version_check_last_time"`
}

const (
	// DefaultRegistryURL is the base URL of the Glide component registry.
	// The add command passes identifiers to the external installer verbatim,
	// so nothing resolves names against this yet; the key is reserved for
	// name-to-URL resolution and is surfaced through 'glide config show'.
	DefaultRegistryURL          = "https://registry.glidekit.dev/r"
	DefaultReleasesURL          = "https://cli.glidekit.dev/latest"
	DefaultManifestPath         = "glide.manifest.json"
	DefaultDebug                = false
	DefaultVersionCheckInterval = 24 * time.Hour
	ConfigFileName              = "config.yaml"
)

var defaultValues = map[string]any{
	"registry_url":            DefaultRegistryURL,
	"releases_url":            DefaultReleasesURL,
	"manifest_path":           DefaultManifestPath,
	"debug":                   DefaultDebug,
	"version_check_interval":  DefaultVersionCheckInterval,
	"version_check_last_time": time.Time{},
}

func ApplyDefaults(v *viper.Viper) {
	for key, value := range defaultValues {
		v.SetDefault(key, value)
	}
}

func ApplyEnvOverrides(v *viper.Viper) {
	v.SetEnvPrefix("GLIDE")
	v.AutomaticEnv()
}

func ReadInConfig(v *viper.Viper) error {
	// Missing config file is fine; defaults and env vars cover everything.
	if err := v.ReadInConfig(); err != nil &&
		!errors.As(err, &viper.ConfigFileNotFoundError{}) &&
		!errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// SetupViper configures the global viper instance with defaults, env vars,
// and the config file.
func SetupViper(configFile string) error {
	v := viper.GetViper()
	v.SetConfigFile(configFile)
	ApplyEnvOverrides(v)
	ApplyDefaults(v)
	return ReadInConfig(v)
}

// Load materializes the effective configuration from the global viper
// instance.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigDir = GetConfigDir()
	return &cfg, nil
}

// GetConfigDir returns the directory holding glide's own config file. The
// GLIDE_CONFIG_DIR environment variable overrides the default of
// ~/.config/glide.
func GetConfigDir() string {
	if dir := os.Getenv("GLIDE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".glide")
	}
	return filepath.Join(home, ".config", "glide")
}

// GetConfigFile returns the full path to glide's config file.
func GetConfigFile(configDir string) string {
	if configDir == "" {
		configDir = GetConfigDir()
	}
	return filepath.Join(configDir, ConfigFileName)
}

// TouchVersionCheckTime persists the time of the last update check. Failures
// are returned but callers treat them as best-effort.
//
// The write goes through a scratch viper instance that holds only the config
// file's own keys plus the updated timestamp. Writing the global instance
// would dump everything it knows, flag values (the API key among them) and
// all current defaults included, into the file.
func TouchVersionCheckTime(t time.Time) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = GetConfigFile("")
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.ReadInConfig()

	v.Set("version_check_last_time", t)
	return v.WriteConfigAs(configFile)
}
