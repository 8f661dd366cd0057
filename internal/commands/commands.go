// Package commands defines the apidogctl command tree. Every command
// is built from a shared Options value, so tests can inject their own
// resolver, credential store and output writer and drive the tree
// through cobra the same way main does.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/ennam/apidogctl/internal/ui"
	"github.com/ennam/apidogctl/pkg/apidog"
	"github.com/ennam/apidogctl/pkg/credentials"
	"github.com/ennam/apidogctl/pkg/settings"
)

// Options carries the dependencies shared by every command. Zero
// fields are filled in with production defaults before the first
// command runs; tests pre-populate what they need.
type Options struct {
	// Output receives command output. Defaults to os.Stdout.
	Output io.Writer

	// Resolver supplies settings. When nil, one is built over the
	// --config file (or the XDG default location). An injected
	// resolver makes --config a no-op.
	Resolver *settings.Resolver

	// Store persists credentials outside the repository. When nil
	// the keyring-first default store is used.
	Store credentials.Store

	// BrowserOpen opens a URL in the user's browser. Defaults to the
	// system opener.
	BrowserOpen func(url string) error

	// Version and BuildDate identify the binary; set from main.
	Version   string
	BuildDate string

	// Flag state bound by the root command.
	configPath  string
	projectRoot string
	verbose     bool
	noColor     bool

	printer *ui.Printer
}

// NewRootCommand builds the apidogctl root command with every
// subcommand attached.
func NewRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apidogctl",
		Short: "Sync OpenAPI schemas with APIDOG Cloud",
		Long: `apidogctl exports the OpenAPI schema a running service publishes on
its schema endpoint, keeps timestamped copies under the project's
apidog/ directory, and synchronizes them with APIDOG Cloud.

Typical workflow:
  apidogctl init      # scaffold the apidog/ directory
  apidogctl export    # fetch the schema from the running server
  apidogctl push      # upload it to APIDOG Cloud
  apidogctl compare   # diff local endpoints against the cloud`,
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Config file (default: "+settings.DefaultConfigPath()+")")
	cmd.PersistentFlags().StringVar(&opts.projectRoot, "project-root", "",
		"Project root directory (default: current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false,
		"Disable colored output and spinners")

	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newPushCommand(opts))
	cmd.AddCommand(newPullCommand(opts))
	cmd.AddCommand(newCompareCommand(opts))
	cmd.AddCommand(newEnvConfigCommand(opts))
	cmd.AddCommand(newAuthCommand(opts))
	cmd.AddCommand(newOpenCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

// complete fills in the dependencies commands rely on, honoring
// anything injected beforehand. Runs after flag parsing, before any
// RunE.
func (o *Options) complete() error {
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Resolver == nil {
		o.Resolver = settings.NewResolver(&settings.FileProvider{Path: o.configPath})
	}
	if o.Store == nil {
		o.Store = credentials.DefaultStore()
	}
	if o.BrowserOpen == nil {
		o.BrowserOpen = open.Run
	}
	if o.projectRoot == "" {
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		o.projectRoot = root
	}
	o.printer = ui.NewPrinter(o.Output, !o.noColor, o.verbose)
	return nil
}

// spinner returns a progress spinner for network waits, active only
// when colored output is on.
func (o *Options) spinner() *ui.Spinner {
	return ui.NewSpinner(!o.noColor)
}

// outputDir resolves the schema directory, preferring the command's
// own --output flag over resolver state.
func (o *Options) outputDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return o.Resolver.OutputDir(o.projectRoot)
}

// credentials resolves the Apidog credential pair: explicit flag
// values win, then resolver state (config file or environment), then
// whatever auth set stored. Either half may still come back empty.
func (o *Options) credentials(ctx context.Context, projectID, token string) (string, string, error) {
	projectID, token, err := o.Resolver.Credentials(projectID, token)
	if err != nil {
		return "", "", err
	}

	if projectID == "" || token == "" {
		stored, err := o.Store.Load(ctx)
		switch {
		case err == nil:
			if projectID == "" {
				projectID = stored.ProjectID
			}
			if token == "" {
				token = stored.Token
			}
		case !errors.Is(err, credentials.ErrNotFound):
			o.printer.Verbose("credential store unavailable: %v", err)
		}
	}

	return projectID, token, nil
}

// requireCredentials is credentials plus the help text shown when
// either half is still missing.
func (o *Options) requireCredentials(ctx context.Context, projectID, token string) (string, string, error) {
	projectID, token, err := o.credentials(ctx, projectID, token)
	if err != nil {
		return "", "", err
	}
	if projectID == "" || token == "" {
		o.credentialsHelp()
		return "", "", errors.New("apidog credentials required")
	}
	return projectID, token, nil
}

// credentialsHelp lists every way to supply credentials.
func (o *Options) credentialsHelp() {
	p := o.printer
	p.Warning("\nAPIDOG credentials required:")
	p.Printf("  Option 1 - config file (%s):", settings.DefaultConfigPath())
	p.Printf("    project_id: your-project-id")
	p.Printf("    token: your-api-token")
	p.Printf("")
	p.Printf("  Option 2 - environment variables:")
	p.Printf(`    export APIDOG_PROJECT_ID="your-project-id"`)
	p.Printf(`    export APIDOG_TOKEN="your-api-token"`)
	p.Printf("")
	p.Printf("  Option 3 - command flags:")
	p.Printf("    --project-id=xxx --token=xxx")
	p.Printf("")
	p.Printf("  Option 4 - stored credentials:")
	p.Printf("    apidogctl auth set --project-id=xxx --token=xxx")
}

// apidogClient builds the cloud client from resolved settings.
func (o *Options) apidogClient(token string) (*apidog.Client, error) {
	baseURL, err := o.Resolver.APIBaseURL()
	if err != nil {
		return nil, err
	}
	apiVersion, err := o.Resolver.APIVersion()
	if err != nil {
		return nil, err
	}
	timeout, err := o.Resolver.Timeout()
	if err != nil {
		return nil, err
	}

	return apidog.NewClient(apidog.Options{
		BaseURL:    baseURL,
		APIVersion: apiVersion,
		Token:      token,
		Timeout:    timeout,
	}), nil
}
