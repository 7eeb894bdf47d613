// Package installer shells out to the external component installer. The
// subprocess inherits standard I/O and runs to completion; there is no
// timeout, retry, or output capture here, and its exit code is preserved for
// the process exit code.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/cli/safeexec"
)

// installerPackage is the npm package invoked to install components into the
// user's project.
const installerPackage = "shadcn"

// ExitError reports a non-zero exit from the installer subprocess.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("component installer exited with code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the subprocess exit code so the CLI can propagate it.
func (e *ExitError) ExitCode() int { return e.Code }

// Runner invokes the external installer.
type Runner struct {
	// LookPath locates the runner binary; defaults to safeexec.LookPath,
	// which skips the current directory on all platforms.
	LookPath func(file string) (string, error)

	// GOOS controls command-shell wrapping; defaults to runtime.GOOS.
	GOOS string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func New() *Runner {
	return &Runner{
		LookPath: safeexec.LookPath,
		GOOS:     runtime.GOOS,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// command builds the executable name and argument vector for adding the given
// component. On Windows npx runs through cmd /c; elsewhere npx is invoked
// directly.
func (r *Runner) command(identifier string, installDeps bool) (string, []string) {
	args := []string{"-y", installerPackage + "@latest", "add", identifier}
	if !installDeps {
		args = append(args, "--skip-install")
	}
	if r.GOOS == "windows" {
		return "cmd", append([]string{"/c", "npx"}, args...)
	}
	return "npx", args
}

// Add runs the installer for the given component identifier, blocking until
// it finishes. A non-zero exit is returned as an [*ExitError].
func (r *Runner) Add(ctx context.Context, identifier string, installDeps bool) error {
	name, args := r.command(identifier, installDeps)

	path, err := r.LookPath(name)
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("failed to run component installer: %w", err)
	}
	return nil
}
