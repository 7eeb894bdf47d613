package installer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	t.Run("posix invocation", func(t *testing.T) {
		r := &Runner{GOOS: "linux"}
		name, args := r.command("button", true)
		assert.Equal(t, "npx", name)
		assert.Equal(t, []string{"-y", "shadcn@latest", "add", "button"}, args)
	})

	t.Run("skipping dependency installation appends the flag", func(t *testing.T) {
		r := &Runner{GOOS: "darwin"}
		name, args := r.command("button", false)
		assert.Equal(t, "npx", name)
		assert.Equal(t, []string{"-y", "shadcn@latest", "add", "button", "--skip-install"}, args)
	})

	t.Run("windows wraps through cmd /c", func(t *testing.T) {
		r := &Runner{GOOS: "windows"}
		name, args := r.command("https://registry.example.com/r/card.json", true)
		assert.Equal(t, "cmd", name)
		assert.Equal(t, []string{"/c", "npx", "-y", "shadcn@latest", "add",
			"https://registry.example.com/r/card.json"}, args)
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("propagates a missing runner binary", func(t *testing.T) {
		r := &Runner{
			GOOS:     "linux",
			LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
		}
		err := r.Add(ctx, "button", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, exec.ErrNotFound)
	})

	t.Run("zero exit succeeds", func(t *testing.T) {
		truePath, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true not available")
		}
		r := &Runner{
			GOOS:     "linux",
			LookPath: func(string) (string, error) { return truePath, nil },
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
		}
		require.NoError(t, r.Add(ctx, "button", true))
	})

	t.Run("non-zero exit surfaces as ExitError", func(t *testing.T) {
		falsePath, err := exec.LookPath("false")
		if err != nil {
			t.Skip("false not available")
		}
		r := &Runner{
			GOOS:     "linux",
			LookPath: func(string) (string, error) { return falsePath, nil },
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
		}

		err = r.Add(ctx, "button", true)
		require.Error(t, err)

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 1, exitErr.Code)
		assert.Equal(t, 1, exitErr.ExitCode())
	})
}
