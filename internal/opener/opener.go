// Package opener launches files with the OS default application.
package opener

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener is the open-with-default-application capability the
// interactive session depends on.
type Opener interface {
	Open(path string) error
}

// Default opens files via the platform launcher (xdg-open, open, or
// cmd start). Launches are fire-and-forget: the child's exit status is
// never consulted.
type Default struct{}

// New returns the platform Opener.
func New() *Default {
	return &Default{}
}

// Open starts the default handler for path. Only spawn failures are
// reported; whatever the handler does afterwards is its own business.
func (*Default) Open(path string) error {
	cmd := command(runtime.GOOS, path)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch handler for %s: %w", path, err)
	}
	slog.Debug("opened file", slog.String("path", path))

	// Reap the child in the background to avoid zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

// command builds the launcher invocation for the given platform.
func command(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		// start is a cmd builtin; the empty string is the window title.
		return exec.Command("cmd", "/c", "start", "", path)
	default:
		return exec.Command("xdg-open", path)
	}
}
