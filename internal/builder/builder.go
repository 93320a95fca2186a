// Package builder runs the documentation engine over a scaffolded docs
// directory.
package builder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

// Builder runs a configured build command.
type Builder struct {
	executor system.CommandExecutor
	command  []string
	output   string
}

// ParseCommand splits a build command using shell quoting rules.
func ParseCommand(command string) ([]string, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid build command %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("build command is empty")
	}
	return words, nil
}

// New returns a Builder for cfg.
func New(exec system.CommandExecutor, cfg config.BuildConfig) (*Builder, error) {
	command, err := ParseCommand(cfg.Command)
	if err != nil {
		return nil, err
	}
	return &Builder{executor: exec, command: command, output: cfg.Output}, nil
}

// Engine is the executable the build command starts.
func (b *Builder) Engine() string {
	return b.command[0]
}

// Available reports whether the engine can be found on PATH.
func (b *Builder) Available() bool {
	path, err := b.executor.LookPath(b.Engine())
	if err != nil {
		logging.Debug("documentation engine not found", "engine", b.Engine(), "error", err)
		return false
	}
	logging.Debug("found documentation engine", "engine", b.Engine(), "path", path)
	return true
}

// OutputDir returns where a build of docsDir is written.
func (b *Builder) OutputDir(docsDir string) string {
	return filepath.Join(docsDir, b.output)
}

// Build runs the engine with docsDir as source and OutputDir as destination
// and waits for it. The engine's exit status is not an error; only a
// cancelled context is.
func (b *Builder) Build(ctx context.Context, docsDir string) (string, error) {
	buildDir := b.OutputDir(docsDir)

	args := make([]string, 0, len(b.command)+1)
	args = append(args, b.command[1:]...)
	args = append(args, docsDir, buildDir)

	logging.Debug("running documentation build", "command", shellquote.Join(append([]string{b.Engine()}, args...)...))

	if err := b.executor.Run(ctx, "", b.Engine(), args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		logging.UserWarning("%s exited with an error: %v", b.Engine(), err)
	}
	return buildDir, nil
}
