package system

import (
	"context"
	"os"
	"os/exec"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// Output runs a command in dir and returns its standard output.
	// Standard error is passed through to the terminal.
	Output(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

	// Run runs a command in dir with stdin/stdout/stderr connected to the terminal.
	Run(ctx context.Context, dir string, name string, args ...string) error

	// LookPath searches PATH for an executable.
	LookPath(name string) (string, error)
}

// osExecutor implements CommandExecutor using real OS operations.
type osExecutor struct{}

func (e *osExecutor) Output(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Output()
}

func (e *osExecutor) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (e *osExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
