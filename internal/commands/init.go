package commands

import (
	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/internal/scaffold"
)

func newInitCommand(opts *Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the apidog directory with templates",
		Long: `Create the apidog/ directory and the helper files the workflow uses:
Makefile targets and a docker-compose override at the project root,
environments.json and a README inside the directory, and .gitignore
rules for generated schema files.

Existing files are left alone unless --force is given; the .gitignore
rules are appended at most once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.outputDir("")
			if err != nil {
				return err
			}
			return scaffold.Run(scaffold.Options{OutputDir: dir, Force: force}, opts.printer)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}
