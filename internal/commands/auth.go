package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/pkg/credentials"
)

func newAuthCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored APIDOG credentials",
		Long: `Manage the credentials apidogctl stores outside the repository.

Stored credentials are used when neither command flags nor settings
supply a project ID and token. The OS keyring is preferred; a file
with restricted permissions in the config directory is the fallback.

Available subcommands:
  set    - Store a project ID and token
  status - Show what is stored
  clear  - Remove stored credentials`,
	}

	cmd.AddCommand(newAuthSetCommand(opts))
	cmd.AddCommand(newAuthStatusCommand(opts))
	cmd.AddCommand(newAuthClearCommand(opts))

	return cmd
}

func newAuthSetCommand(opts *Options) *cobra.Command {
	var projectID, token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store APIDOG credentials",
		Long: `Store the project ID and API token for later commands.

Example:
  apidogctl auth set --project-id=123456 --token=APS-xxxx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == "" || token == "" {
				return errors.New("both --project-id and --token are required")
			}

			creds := &credentials.Credentials{
				ProjectID: projectID,
				Token:     token,
				SavedAt:   time.Now(),
			}
			if err := opts.Store.Save(cmd.Context(), creds); err != nil {
				return fmt.Errorf("failed to store credentials: %w", err)
			}

			opts.printer.Success("Credentials stored for project %s", projectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project-id", "", "APIDOG project ID")
	cmd.Flags().StringVar(&token, "token", "", "APIDOG API token")

	return cmd
}

func newAuthStatusCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored credential status",
		Long:  "Display the stored project ID and a masked view of the token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.Store.Load(cmd.Context())
			if errors.Is(err, credentials.ErrNotFound) {
				opts.printer.Printf("No credentials stored")
				opts.printer.Printf("Run 'apidogctl auth set' to store them")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read credentials: %w", err)
			}

			opts.printer.Printf("Project ID: %s", creds.ProjectID)
			opts.printer.Printf("Token:      %s", credentials.MaskToken(creds.Token))
			if !creds.SavedAt.IsZero() {
				opts.printer.Printf("Saved:      %s", creds.SavedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newAuthClearCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored credentials",
		Long:  "Remove the stored credentials from every backend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Store.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}
			opts.printer.Success("Credentials removed")
			return nil
		},
	}
}
