package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/pkg/export"
	"github.com/ennam/apidogctl/pkg/schema"
)

type compareOptions struct {
	projectID string
	token     string
	localFile string
	server    string
}

func newCompareCommand(opts *Options) *cobra.Command {
	var cmpOpts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the local schema with APIDOG Cloud",
		Long: `Diff the endpoint paths of the local schema against the cloud copy.

The local side defaults to the latest export (a fresh export is taken
when none exists); the cloud side is pulled for the comparison. The
report lists paths unique to each side and counts the common ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), opts, cmpOpts)
		},
	}

	cmd.Flags().StringVar(&cmpOpts.projectID, "project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().StringVar(&cmpOpts.token, "token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().StringVar(&cmpOpts.localFile, "local-file", "", "Local schema file (default: latest export)")
	addServerFlag(cmd, &cmpOpts.server)

	return cmd
}

func runCompare(ctx context.Context, opts *Options, cmpOpts compareOptions) error {
	localFile := cmpOpts.localFile
	if localFile == "" {
		dir, err := opts.outputDir("")
		if err != nil {
			return err
		}
		localFile = export.LatestPath(dir, schema.FormatJSON)
		if _, err := os.Stat(localFile); err != nil {
			opts.printer.Printf("No local schema found, exporting...")
			localFile, err = runExport(ctx, opts, jsonExportOptions(cmpOpts.server))
			if err != nil {
				return err
			}
		}
	}

	cloudFile, err := runPull(ctx, opts, pullOptions{
		projectID: cmpOpts.projectID,
		token:     cmpOpts.token,
	})
	if err != nil {
		return err
	}

	local, err := schema.ReadFile(localFile)
	if err != nil {
		return err
	}
	remote, err := schema.ReadFile(cloudFile)
	if err != nil {
		return err
	}

	opts.printer.DiffReport(schema.Diff(local, remote))
	return nil
}
