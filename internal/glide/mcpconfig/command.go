package mcpconfig

import (
	"github.com/glidekit/glide-cli/internal/glide/client"
)

const (
	// ServerPackage is the npm package that implements the Glide MCP server.
	ServerPackage = "@glidekit/mcp"

	// APIKeyPlaceholder is written into the config when no key is supplied,
	// so users can see where their key belongs.
	APIKeyPlaceholder = "YOUR_API_KEY"
)

// DefaultServerCommand builds the invocation a client uses to launch the
// Glide MCP server. The key is interpolated verbatim into the API_KEY
// argument; the only quoting is the surrounding double quotes.
//
// On Windows npx has to be run through the command shell, so the invocation
// is wrapped in `cmd /c`. Everywhere else npx is invoked directly.
func DefaultServerCommand(apiKey string, platform client.Platform) ServerCommand {
	if apiKey == "" {
		apiKey = APIKeyPlaceholder
	}

	args := []string{"-y", ServerPackage + "@latest", `API_KEY="` + apiKey + `"`}

	if platform == client.Windows {
		return ServerCommand{
			Command: "cmd",
			Args:    append([]string{"/c", "npx"}, args...),
		}
	}
	return ServerCommand{
		Command: "npx",
		Args:    args,
	}
}
