// Package app provides the application context for sphinx-me.
// It allows dependency injection for testing.
package app

import (
	"io"
	"os"
	"time"

	"github.com/firefly-engineering/sphinx-me/internal/builder"
	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/prompt"
	"github.com/firefly-engineering/sphinx-me/internal/resolver"
	"github.com/firefly-engineering/sphinx-me/internal/scaffold"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

// App holds the application dependencies
type App struct {
	// FS is the filesystem docs and AUTHORS are read from and written to
	FS system.FileSystem

	// Executor runs Python and the documentation engine
	Executor system.CommandExecutor

	// Config overrides the per-project .sphinx-me.toml when set
	Config *config.Config

	// Prompter answers for missing values; chosen from the config when nil
	Prompter prompt.Provider

	// Stdin feeds the default prompter
	Stdin *os.File

	// ErrOut receives prompts and the settings report
	ErrOut io.Writer

	// Now is the clock used for the copyright year
	Now func() time.Time
}

// Option is a function that configures the App
type Option func(*App)

// WithFS sets a custom filesystem
func WithFS(fsys system.FileSystem) Option {
	return func(a *App) {
		a.FS = fsys
	}
}

// WithExecutor sets a custom command executor
func WithExecutor(exec system.CommandExecutor) Option {
	return func(a *App) {
		a.Executor = exec
	}
}

// WithConfig sets a fixed config instead of loading one per project
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithPrompter sets a custom value provider
func WithPrompter(p prompt.Provider) Option {
	return func(a *App) {
		a.Prompter = p
	}
}

// WithErrOut sets where prompts and reports are written
func WithErrOut(w io.Writer) Option {
	return func(a *App) {
		a.ErrOut = w
	}
}

// WithClock sets a custom clock
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.Now = now
	}
}

// New creates a new App with the given options.
// Unset dependencies use the real OS implementations.
func New(opts ...Option) *App {
	app := &App{
		FS:       system.DefaultFS(),
		Executor: system.DefaultExecutor(),
		Stdin:    os.Stdin,
		ErrOut:   os.Stderr,
		Now:      time.Now,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// LoadConfig returns the config for the project in dir.
func (a *App) LoadConfig(dir string) (*config.Config, error) {
	if a.Config != nil {
		return a.Config, nil
	}
	cfg, err := config.Load(a.FS, dir)
	if err != nil {
		return nil, errors.ConfigError("failed to load "+config.FileName, err)
	}
	if cfg.Path != "" {
		logging.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// Scaffolder returns a Scaffolder printing to out. With build false the
// documentation build is skipped.
func (a *App) Scaffolder(cfg *config.Config, out io.Writer, build bool) (*scaffold.Scaffolder, error) {
	var b *builder.Builder
	if build {
		var err error
		b, err = builder.New(a.Executor, cfg.Build)
		if err != nil {
			return nil, errors.ConfigError("invalid build command", err)
		}
	}
	return scaffold.New(a.FS, b, out), nil
}

// Resolver returns a Resolver for cfg.
func (a *App) Resolver(cfg *config.Config) *resolver.Resolver {
	p := a.Prompter
	if p == nil {
		p = prompt.New(cfg.Prompt, a.Stdin, a.ErrOut)
	}
	return resolver.New(cfg,
		resolver.WithFS(a.FS),
		resolver.WithExecutor(a.Executor),
		resolver.WithPrompter(p),
		resolver.WithReport(a.ErrOut),
		resolver.WithClock(a.Now),
	)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
