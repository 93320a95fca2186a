package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
)

var noBuild bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Create the Sphinx docs layout in the current directory",
	Long: `Create docs/index.rst and docs/conf.py for the project in the current
directory, then build the docs into docs/build if sphinx-build is installed.

Existing docs/index.rst and docs/conf.py are overwritten. Nothing is written
when the directory has no README.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&noBuild, "no-build", false, "Create the docs layout without building it")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.FilesystemError("resolve", "working directory", err)
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logging.UserInfo("Using config %s", cfg.Path)
	}

	s, err := scaffolder(cfg, cmd.OutOrStdout(), !noBuild)
	if err != nil {
		return err
	}

	result, err := s.Install(cmd.Context(), dir)
	if err != nil {
		return err
	}
	if result.Aborted {
		logDebug("install aborted", "dir", dir)
		return nil
	}

	logDebug("install finished", "docs", result.DocsDir, "files", result.Files, "built", result.Built)
	return nil
}
