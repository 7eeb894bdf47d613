// Package mcpconfig reads, merges, and writes client MCP configuration
// documents. Top-level keys that do not belong to us are treated as passenger
// data: they are carried as raw JSON and written back untouched.
package mcpconfig

import (
	"encoding/json"
)

// ServerName is the key glide registers its server entry under.
const ServerName = "glide"

// ServerCommand describes an executable invocation for an MCP server entry.
// Argument order is significant and is never reordered.
type ServerCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// ClientConfig is a client's on-disk MCP configuration document. MCPServers
// values stay raw so entries written by other tools keep whatever shape they
// have (url-based entries, extra fields, and so on).
type ClientConfig struct {
	MCPServers map[string]json.RawMessage

	// passengers holds every top-level key other than mcpServers.
	passengers map[string]json.RawMessage
}

// NewClientConfig returns an empty config with an initialized mcpServers map.
func NewClientConfig() *ClientConfig {
	return &ClientConfig{
		MCPServers: map[string]json.RawMessage{},
		passengers: map[string]json.RawMessage{},
	}
}

// SetServer registers a server entry under the given name, replacing any
// existing entry with the same name.
func (c *ClientConfig) SetServer(name string, cmd ServerCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	if c.MCPServers == nil {
		c.MCPServers = map[string]json.RawMessage{}
	}
	c.MCPServers[name] = data
	return nil
}

// Server decodes the named entry into a [ServerCommand]. The second return is
// false when the entry is absent or does not have command/args shape.
func (c *ClientConfig) Server(name string) (ServerCommand, bool) {
	raw, ok := c.MCPServers[name]
	if !ok {
		return ServerCommand{}, false
	}
	var cmd ServerCommand
	if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Command == "" {
		return ServerCommand{}, false
	}
	return cmd, true
}

func (c *ClientConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.MCPServers = nil
	if rawServers, ok := raw["mcpServers"]; ok {
		var servers map[string]json.RawMessage
		if err := json.Unmarshal(rawServers, &servers); err != nil {
			return err
		}
		c.MCPServers = servers
		delete(raw, "mcpServers")
	}
	c.passengers = raw
	return nil
}

// MarshalJSON always emits an mcpServers object, even when empty, alongside
// the preserved passenger keys.
func (c *ClientConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.passengers)+1)
	for key, value := range c.passengers {
		out[key] = value
	}

	servers := c.MCPServers
	if servers == nil {
		servers = map[string]json.RawMessage{}
	}
	serversJSON, err := json.Marshal(servers)
	if err != nil {
		return nil, err
	}
	out["mcpServers"] = serversJSON

	return json.Marshal(out)
}

// merge overlays other onto c: new top-level keys and new server entries win
// on collision, everything else is preserved.
func (c *ClientConfig) merge(other *ClientConfig) {
	if c.MCPServers == nil {
		c.MCPServers = map[string]json.RawMessage{}
	}
	if c.passengers == nil {
		c.passengers = map[string]json.RawMessage{}
	}
	for key, value := range other.passengers {
		c.passengers[key] = value
	}
	for name, entry := range other.MCPServers {
		c.MCPServers[name] = entry
	}
}
