package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/pkg/export"
	"github.com/ennam/apidogctl/pkg/schema"
)

type pullOptions struct {
	projectID string
	token     string
	output    string
}

func newPullCommand(opts *Options) *cobra.Command {
	var pullOpts pullOptions

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull the schema from APIDOG Cloud",
		Long: `Download the project's current schema from APIDOG Cloud as an
OpenAPI 3.0 JSON document.

Without --output the schema lands in the output directory under a
timestamped openapi_from_apidog_* name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPull(cmd.Context(), opts, pullOpts)
			return err
		},
	}

	cmd.Flags().StringVar(&pullOpts.projectID, "project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().StringVar(&pullOpts.token, "token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().StringVarP(&pullOpts.output, "output", "o", "", "Output file path (default: timestamped)")

	return cmd
}

// runPull downloads the cloud schema and writes it to disk, returning
// the written path. compare reuses it for the cloud side of the diff.
func runPull(ctx context.Context, opts *Options, pullOpts pullOptions) (string, error) {
	projectID, token, err := opts.requireCredentials(ctx, pullOpts.projectID, pullOpts.token)
	if err != nil {
		return "", err
	}

	opts.printer.Printf("Pulling from APIDOG project %s...", projectID)

	client, err := opts.apidogClient(token)
	if err != nil {
		return "", err
	}

	spin := opts.spinner()
	_ = spin.Start("Downloading schema")
	doc, err := client.ExportOpenAPI(ctx, projectID)
	if err != nil {
		spin.Fail("Pull failed")
		return "", err
	}
	spin.Success("Schema downloaded")

	outputFile := pullOpts.output
	if outputFile == "" {
		dir, err := opts.outputDir("")
		if err != nil {
			return "", err
		}
		outputFile = export.PulledPath(dir, time.Now())
	}

	if err := schema.WriteFile(outputFile, doc, schema.FormatJSON, 2); err != nil {
		return "", err
	}

	opts.printer.Success("Schema pulled to: %s", outputFile)
	opts.printer.Stats(doc.Stats())

	return outputFile, nil
}
