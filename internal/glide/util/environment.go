package util

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether the given [io.Writer] is an interactive
// terminal / TTY.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsCI determines if the current execution context is within a known CI/CD
// system. Based on https://github.com/watson/ci-info/blob/HEAD/index.js.
func IsCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("BUILD_NUMBER") != "" ||
		os.Getenv("RUN_ID") != ""
}
