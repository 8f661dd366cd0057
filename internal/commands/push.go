package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type pushOptions struct {
	projectID string
	token     string
	file      string
	server    string
}

func newPushCommand(opts *Options) *cobra.Command {
	var pushOpts pushOptions

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the local schema to APIDOG Cloud",
		Long: `Upload a schema file to the APIDOG project.

Without --file a fresh export is taken first. On the Apidog side,
matching endpoints and component schemas are merged, keeping whichever
definition is newer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd.Context(), opts, pushOpts)
		},
	}

	cmd.Flags().StringVar(&pushOpts.projectID, "project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().StringVar(&pushOpts.token, "token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().StringVarP(&pushOpts.file, "file", "f", "", "Schema file to push (default: export new)")
	addServerFlag(cmd, &pushOpts.server)

	return cmd
}

func runPush(ctx context.Context, opts *Options, pushOpts pushOptions) error {
	projectID, token, err := opts.requireCredentials(ctx, pushOpts.projectID, pushOpts.token)
	if err != nil {
		return err
	}

	file := pushOpts.file
	if file == "" {
		opts.printer.Printf("No schema file specified, exporting...")
		file, err = runExport(ctx, opts, jsonExportOptions(pushOpts.server))
		if err != nil {
			return err
		}
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	opts.printer.Printf("Pushing to APIDOG project %s...", projectID)

	client, err := opts.apidogClient(token)
	if err != nil {
		return err
	}

	spin := opts.spinner()
	_ = spin.Start("Uploading schema")
	if err := client.ImportOpenAPI(ctx, projectID, string(content)); err != nil {
		spin.Fail("Push failed")
		return err
	}
	spin.Success("Schema uploaded")

	opts.printer.Success("Successfully pushed to APIDOG!")
	return nil
}
