package mcpconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glidekit/glide-cli/internal/glide/client"
)

func TestDefaultServerCommand(t *testing.T) {
	t.Run("posix invokes npx directly", func(t *testing.T) {
		for _, platform := range []client.Platform{client.MacOS, client.Linux} {
			cmd := DefaultServerCommand("sk-123", platform)
			assert.Equal(t, "npx", cmd.Command)
			assert.Equal(t, []string{"-y", "@glidekit/mcp@latest", `API_KEY="sk-123"`}, cmd.Args)
		}
	})

	t.Run("windows wraps the invocation in cmd /c", func(t *testing.T) {
		cmd := DefaultServerCommand("sk-123", client.Windows)
		assert.Equal(t, "cmd", cmd.Command)
		assert.Equal(t, []string{"/c", "npx", "-y", "@glidekit/mcp@latest", `API_KEY="sk-123"`}, cmd.Args)
	})

	t.Run("empty key falls back to the placeholder", func(t *testing.T) {
		cmd := DefaultServerCommand("", client.Linux)
		assert.Contains(t, cmd.Args, `API_KEY="YOUR_API_KEY"`)
	})

	t.Run("key is interpolated verbatim", func(t *testing.T) {
		// Keys with shell-significant characters are not escaped; the value
		// inside the quotes is exactly what the caller passed.
		cmd := DefaultServerCommand(`k$e"y`, client.Linux)
		assert.Equal(t, `API_KEY="k$e"y"`, cmd.Args[len(cmd.Args)-1])
	})
}
