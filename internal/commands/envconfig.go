package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// environmentsFileName is where env-config writes the resolved
// environment set, inside the output directory.
const environmentsFileName = "apidog_environments.json"

func newEnvConfigCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "env-config",
		Short: "Generate the environment configuration file",
		Long: `Write the resolved target environments (names, base URLs and
variables) to ` + environmentsFileName + ` in the output directory, in
the format Apidog's environment import expects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnvConfig(opts)
		},
	}
}

func runEnvConfig(opts *Options) error {
	opts.printer.Printf("Generating environment configuration...")

	envs, err := opts.Resolver.Environments()
	if err != nil {
		return err
	}

	dir, err := opts.outputDir("")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(envs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode environments: %w", err)
	}

	configFile := filepath.Join(dir, environmentsFileName)
	if err := os.WriteFile(configFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write environment config: %w", err)
	}

	opts.printer.Success("Config saved to: %s", configFile)
	return nil
}
