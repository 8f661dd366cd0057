package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/pkg/apidog"
)

func newOpenCommand(opts *Options) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the APIDOG project in the browser",
		Long: `Open the Apidog web application page for the resolved project in
the default browser.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd.Context(), opts, projectID)
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")

	return cmd
}

func runOpen(ctx context.Context, opts *Options, projectID string) error {
	projectID, _, err := opts.credentials(ctx, projectID, "")
	if err != nil {
		return err
	}
	if projectID == "" {
		opts.credentialsHelp()
		return errors.New("apidog project ID required")
	}

	url := apidog.ProjectWebURL(projectID)
	opts.printer.Printf("Opening %s", url)

	if err := opts.BrowserOpen(url); err != nil {
		opts.printer.Warning("Failed to open browser automatically.")
		opts.printer.Printf("Please visit: %s", url)
	}
	return nil
}
