package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func setupKeyStorage(t *testing.T) {
	t.Helper()
	keyring.MockInit()
	SetTestServiceName(t)
	t.Setenv("GLIDE_CONFIG_DIR", t.TempDir())
}

func TestAPIKeyStorage(t *testing.T) {
	t.Run("store and retrieve via keyring", func(t *testing.T) {
		setupKeyStorage(t)

		require.NoError(t, StoreAPIKey("sk-test-123"))
		assert.Equal(t, "sk-test-123", GetAPIKey())
	})

	t.Run("file fallback", func(t *testing.T) {
		setupKeyStorage(t)

		require.NoError(t, StoreAPIKeyToFile("sk-file-456"))
		assert.Equal(t, "sk-file-456", GetAPIKey())

		// Stored with restricted permissions.
		info, err := os.Stat(filepath.Join(GetConfigDir(), credentialsFile))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("keyring takes precedence over file", func(t *testing.T) {
		setupKeyStorage(t)

		require.NoError(t, StoreAPIKeyToFile("file-key"))
		require.NoError(t, keyring.Set(GetServiceName(), keyringUsername, "keyring-key"))
		assert.Equal(t, "keyring-key", GetAPIKey())
	})

	t.Run("no key stored", func(t *testing.T) {
		setupKeyStorage(t)
		assert.Empty(t, GetAPIKey())
	})

	t.Run("remove clears both stores", func(t *testing.T) {
		setupKeyStorage(t)

		require.NoError(t, StoreAPIKey("sk-test"))
		require.NoError(t, StoreAPIKeyToFile("sk-test"))

		require.NoError(t, RemoveAPIKey())
		assert.Empty(t, GetAPIKey())
	})

	t.Run("remove with nothing stored succeeds", func(t *testing.T) {
		setupKeyStorage(t)
		assert.NoError(t, RemoveAPIKey())
	})
}
