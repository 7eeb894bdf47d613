package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("empty path", func(t *testing.T) {
		assert.Equal(t, "", ExpandPath(""))
	})

	t.Run("bare tilde", func(t *testing.T) {
		assert.Equal(t, home, ExpandPath("~"))
	})

	t.Run("tilde prefix", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, "custom", "config.json"), ExpandPath("~/custom/config.json"))
	})

	t.Run("tilde mid-path is untouched", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/data", "~backup"), ExpandPath("/data/~backup"))
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("GLIDE_TEST_DIR", "/opt/glide")
		assert.Equal(t, filepath.Join("/opt/glide", "config.json"), ExpandPath("$GLIDE_TEST_DIR/config.json"))
	})

	t.Run("absolute path is cleaned", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/a", "b"), ExpandPath("/a//b/"))
	})
}
