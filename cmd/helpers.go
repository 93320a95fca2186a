package cmd

import (
	"io"

	"github.com/firefly-engineering/sphinx-me/internal/app"
	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/resolver"
	"github.com/firefly-engineering/sphinx-me/internal/scaffold"
)

// Helper aliases for diagnostic output (delegates to logging package)
var (
	logDebug = logging.Debug
)

// loadConfig loads the config for the project in dir.
func loadConfig(dir string) (*config.Config, error) {
	return app.Default.LoadConfig(dir)
}

// scaffolder returns the application Scaffolder printing to out.
func scaffolder(cfg *config.Config, out io.Writer, build bool) (*scaffold.Scaffolder, error) {
	return app.Default.Scaffolder(cfg, out, build)
}

// newResolver returns the application Resolver for cfg.
func newResolver(cfg *config.Config) *resolver.Resolver {
	return app.Default.Resolver(cfg)
}
