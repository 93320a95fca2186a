package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/resolver"
)

var confCmd = &cobra.Command{
	Use:   "conf <path-to-conf.py>",
	Short: "Print the Sphinx settings for a generated conf.py",
	Long: `Resolve the version and author of the project owning the given conf.py
and print the derived Sphinx settings as a JSON object.

The generated docs/conf.py runs this command and merges the output into its
globals. A report of the values is written to stderr; values that cannot be
discovered are asked for.`,
	Args: cobra.ExactArgs(1),
	RunE: runConf,
}

func init() {
	rootCmd.AddCommand(confCmd)
}

func runConf(cmd *cobra.Command, args []string) error {
	stub := args[0]

	root, err := resolver.ProjectRoot(stub)
	if err != nil {
		return errors.Wrap(errors.ExitStubError, "failed to locate project root", err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ns := resolver.Namespace{resolver.FileKey: stub}
	settings, err := newResolver(cfg).SetupConf(cmd.Context(), ns)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if err := enc.Encode(settings); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to write settings", err)
	}
	return nil
}
