package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sphinx-me/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "sphinx-me",
	Short: "Wrap a project README with Sphinx docs",
	Long: `sphinx-me turns a project's README into Sphinx documentation.

Run it in a project directory to create:
  - docs/index.rst, which includes the README
  - docs/conf.py, which asks sphinx-me for the project settings at build time

Version and author are read from setup.py, pyproject.toml, CITATION.cff,
an AUTHORS file or the project's modules, and asked for when not found.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
	RunE: runInstall,
}

// ExecuteContext runs the command tree. Errors are returned, not printed.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.Flags().BoolVar(&noBuild, "no-build", false, "Create the docs layout without building it")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
