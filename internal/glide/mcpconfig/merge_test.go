package mcpconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidekit/glide-cli/internal/glide/client"
)

func newTestInstaller(t *testing.T) (*Installer, string) {
	t.Helper()
	home := t.TempDir()
	return &Installer{
		Platform: client.Linux,
		Env:      map[string]string{},
		Home:     home,
	}, home
}

func glideConfig(t *testing.T) *ClientConfig {
	t.Helper()
	cfg := NewClientConfig()
	require.NoError(t, cfg.SetServer(ServerName,
		DefaultServerCommand("test-key", client.Linux)))
	return cfg
}

func readConfig(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

func TestInstall(t *testing.T) {
	t.Run("creates file and parent directories", func(t *testing.T) {
		ins, home := newTestInstaller(t)

		path, err := ins.Install(client.Claude, glideConfig(t))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), path)

		raw := readConfig(t, path)
		var servers map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw["mcpServers"], &servers))
		assert.Contains(t, servers, ServerName)
	})

	t.Run("preserves existing servers and passenger keys", func(t *testing.T) {
		ins, _ := newTestInstaller(t)
		path, err := ins.ResolvePath(client.Cursor)
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(`{
			"theme": "dark",
			"mcpServers": {
				"other": {"url": "https://example.com/sse"}
			}
		}`), 0644))

		_, err = ins.Install(client.Cursor, glideConfig(t))
		require.NoError(t, err)

		raw := readConfig(t, path)
		assert.JSONEq(t, `"dark"`, string(raw["theme"]))
		var servers map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw["mcpServers"], &servers))
		assert.Contains(t, servers, "other")
		assert.Contains(t, servers, ServerName)
	})

	t.Run("is idempotent", func(t *testing.T) {
		ins, _ := newTestInstaller(t)

		path, err := ins.Install(client.Windsurf, glideConfig(t))
		require.NoError(t, err)
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = ins.Install(client.Windsurf, glideConfig(t))
		require.NoError(t, err)
		second, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})

	t.Run("tolerates comments and trailing commas", func(t *testing.T) {
		ins, _ := newTestInstaller(t)
		path, err := ins.ResolvePath(client.Witsy)
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(`{
			// user settings
			"fontSize": 14,
			"mcpServers": {},
		}`), 0644))

		var warned bool
		ins.Warn = func(string, error) { warned = true }

		_, err = ins.Install(client.Witsy, glideConfig(t))
		require.NoError(t, err)
		assert.False(t, warned, "hujson input should not count as corruption")

		raw := readConfig(t, path)
		assert.JSONEq(t, `14`, string(raw["fontSize"]))
	})

	t.Run("recovers from corrupt config with a warning", func(t *testing.T) {
		ins, _ := newTestInstaller(t)
		path, err := ins.ResolvePath(client.Enconvo)
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(`{not json at all`), 0644))

		var warned bool
		ins.Warn = func(msg string, err error) {
			warned = true
			assert.Contains(t, msg, path)
		}

		_, err = ins.Install(client.Enconvo, glideConfig(t))
		require.NoError(t, err)
		assert.True(t, warned, "corrupt config should be surfaced through Warn")

		raw := readConfig(t, path)
		var servers map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw["mcpServers"], &servers))
		assert.Contains(t, servers, ServerName)
	})

	t.Run("treats empty file as missing", func(t *testing.T) {
		ins, _ := newTestInstaller(t)
		path, err := ins.ResolvePath(client.Cline)
		require.NoError(t, err)

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))

		var warned bool
		ins.Warn = func(string, error) { warned = true }

		_, err = ins.Install(client.Cline, glideConfig(t))
		require.NoError(t, err)
		assert.False(t, warned)
	})

	t.Run("invalid client writes nothing", func(t *testing.T) {
		ins, home := newTestInstaller(t)
		_, err := ins.Install(client.Client("zed"), glideConfig(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrInvalidClient)

		entries, err := os.ReadDir(home)
		require.NoError(t, err)
		assert.Empty(t, entries, "failed install must not touch the filesystem")
	})

	t.Run("invalid config writes nothing", func(t *testing.T) {
		ins, _ := newTestInstaller(t)
		path, err := ins.ResolvePath(client.Claude)
		require.NoError(t, err)

		for _, cfg := range []*ClientConfig{nil, {}} {
			err := ins.InstallAt(path, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}
		assert.NoFileExists(t, path)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields empty config", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg.MCPServers)
		assert.Empty(t, cfg.MCPServers)
	})

	t.Run("file without mcpServers key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark"}`), 0644))

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.NotNil(t, cfg.MCPServers)

		out, err := json.Marshal(cfg)
		require.NoError(t, err)
		assert.JSONEq(t, `{"theme": "dark", "mcpServers": {}}`, string(out))
	})

	t.Run("non-object document recovers with warning", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0644))

		var warned bool
		cfg, err := Load(path, func(string, error) { warned = true })
		require.NoError(t, err)
		assert.True(t, warned)
		assert.Empty(t, cfg.MCPServers)
	})
}
