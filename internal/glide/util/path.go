package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands environment variables and a leading tilde in file paths.
// Undefined environment variables expand to the empty string, matching
// [os.ExpandEnv]. A tilde anywhere other than the start of the path is left
// alone.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	expanded := os.ExpandEnv(path)

	if expanded == "~" {
		homeDir, _ := os.UserHomeDir()
		return homeDir
	}

	if strings.HasPrefix(expanded, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			expanded = filepath.Join(homeDir, expanded[2:])
		}
	}

	return filepath.Clean(expanded)
}
