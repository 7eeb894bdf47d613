package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

const (
	keyringServiceName = "glide-cli"
	keyringUsername    = "api-key"
	credentialsFile    = "credentials"
)

// testServiceNameOverride lets tests isolate their keyring entries.
var testServiceNameOverride string

// GetServiceName returns the keyring service name.
func GetServiceName() string {
	if testServiceNameOverride != "" {
		return testServiceNameOverride
	}

	// A test that reaches the real keyring without an override would pollute
	// the developer's keychain.
	if testing.Testing() {
		panic("test must call SetTestServiceName() to set a unique keyring service name")
	}

	return keyringServiceName
}

// SetTestServiceName gives the current test a unique keyring service name and
// restores the default on cleanup.
func SetTestServiceName(t *testing.T) {
	testServiceNameOverride = "glide-test-" + t.Name()
	t.Cleanup(func() {
		testServiceNameOverride = ""
	})
}

// StoreAPIKey saves the API key, preferring the system keyring and falling
// back to a restricted file under the config directory when no keyring is
// available.
func StoreAPIKey(apiKey string) error {
	if err := keyring.Set(GetServiceName(), keyringUsername, apiKey); err == nil {
		return nil
	}
	return storeAPIKeyToFile(apiKey)
}

// StoreAPIKeyToFile saves the API key to the file fallback directly (test
// helper).
func StoreAPIKeyToFile(apiKey string) error {
	return storeAPIKeyToFile(apiKey)
}

func storeAPIKeyToFile(apiKey string) error {
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, credentialsFile)
	if err := os.WriteFile(path, []byte(apiKey), 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// GetAPIKey returns the stored API key, or the empty string when none is
// stored anywhere.
func GetAPIKey() string {
	if key, err := keyring.Get(GetServiceName(), keyringUsername); err == nil && key != "" {
		return key
	}

	content, err := os.ReadFile(filepath.Join(GetConfigDir(), credentialsFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}

// RemoveAPIKey deletes the stored API key from both the keyring and the file
// fallback. A key that was never stored is not an error.
func RemoveAPIKey() error {
	keyringErr := keyring.Delete(GetServiceName(), keyringUsername)
	if errors.Is(keyringErr, keyring.ErrNotFound) {
		keyringErr = nil
	}

	fileErr := os.Remove(filepath.Join(GetConfigDir(), credentialsFile))
	if errors.Is(fileErr, fs.ErrNotExist) {
		fileErr = nil
	}

	if keyringErr != nil {
		return fmt.Errorf("failed to remove key from keyring: %w", keyringErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to remove credentials file: %w", fileErr)
	}
	return nil
}
