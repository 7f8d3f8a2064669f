package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens a file with an external application
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// SystemLauncher opens files with the operating system's default application,
// or with Command when one is configured. The path is appended as the last
// argument.
type SystemLauncher struct {
	Command []string
}

// DefaultOpenCommand returns the default-application launcher for goos
func DefaultOpenCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// command builds the launcher invocation for path
func (l SystemLauncher) command(ctx context.Context, path string) *exec.Cmd {
	argv := l.Command
	if len(argv) == 0 {
		argv = DefaultOpenCommand(runtime.GOOS)
	}
	args := append(append([]string{}, argv[1:]...), path)
	return exec.CommandContext(ctx, argv[0], args...)
}

// Open runs the launcher and waits for it. Default launchers hand the file to
// the desktop and exit immediately.
func (l SystemLauncher) Open(ctx context.Context, path string) error {
	cmd := l.command(ctx, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		if len(out) > 0 {
			err = fmt.Errorf("%w: %s", err, out)
		}
		return ErrIO{Op: "open", Path: path, Err: err}
	}
	return nil
}
