package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/pkg/export"
	"github.com/ennam/apidogctl/pkg/schema"
)

func newValidateCommand(opts *Options) *cobra.Command {
	var (
		file   string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI schema file",
		Long: `Validate an exported schema file.

Without --file the latest export is checked. The default check verifies
the required top-level fields (openapi, info, paths); --strict
additionally parses the whole document against the OpenAPI 3
specification, resolving every reference.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), opts, file, strict)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Schema file to validate (default: latest export)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Run full OpenAPI 3 validation")

	return cmd
}

func runValidate(ctx context.Context, opts *Options, file string, strict bool) error {
	if file == "" {
		dir, err := opts.outputDir("")
		if err != nil {
			return err
		}
		file = export.LatestPath(dir, schema.FormatJSON)
	}

	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("schema file not found: %s", file)
	}

	opts.printer.Printf("Validating: %s", file)

	doc, err := schema.ReadFile(file)
	if err != nil {
		return err
	}

	if err := doc.CheckRequiredFields(); err != nil {
		return err
	}

	if strict {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read schema file: %w", err)
		}
		if err := schema.Validate(ctx, data); err != nil {
			return err
		}
		opts.printer.Verbose("Full OpenAPI 3 validation passed")
	}

	opts.printer.Stats(doc.Stats())
	opts.printer.Success("Schema is valid!")
	return nil
}
