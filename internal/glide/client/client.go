// Package client resolves the on-disk MCP configuration file for each
// supported AI client. The set of clients is closed: adding one means adding a
// constant, a display name, and a config path, all of which are checked at
// compile time by the exhaustive switches in this package.
package client

import (
	"errors"
	"fmt"
	"strings"
)

// Client identifies a supported AI client application.
type Client string

const (
	Claude   Client = "claude"
	Cline    Client = "cline"
	RooCline Client = "roo-cline"
	Windsurf Client = "windsurf"
	Witsy    Client = "witsy"
	Enconvo  Client = "enconvo"
	Cursor   Client = "cursor"
)

// ErrInvalidClient is returned when a client identifier is outside the
// supported set.
var ErrInvalidClient = errors.New("invalid client")

// All returns every supported client in display order.
func All() []Client {
	return []Client{Claude, Cline, RooCline, Windsurf, Witsy, Enconvo, Cursor}
}

// Parse maps a user-supplied identifier to a Client. Matching is
// case-insensitive. Unknown identifiers fail with [ErrInvalidClient] and the
// list of valid names.
func Parse(name string) (Client, error) {
	normalized := Client(strings.ToLower(strings.TrimSpace(name)))
	for _, c := range All() {
		if c == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported clients: %s)", ErrInvalidClient, name, strings.Join(Names(), ", "))
}

// Names returns the identifiers of all supported clients.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}

// DisplayName returns the human-readable product name for a client.
func (c Client) DisplayName() string {
	switch c {
	case Claude:
		return "Claude Desktop"
	case Cline:
		return "Cline"
	case RooCline:
		return "Roo Cline"
	case Windsurf:
		return "Windsurf"
	case Witsy:
		return "Witsy"
	case Enconvo:
		return "Enconvo"
	case Cursor:
		return "Cursor"
	}
	return string(c)
}
