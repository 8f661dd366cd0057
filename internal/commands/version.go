package commands

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionInfo is the version command's payload.
type versionInfo struct {
	ClientVersion string `json:"client_version"`
	BuildDate     string `json:"build_date,omitempty"`
	GoVersion     string `json:"go_version"`
	Platform      string `json:"platform"`
}

func newVersionCommand(opts *Options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the client version, build date, Go version and platform.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(opts, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runVersion(opts *Options, outputFormat string) error {
	info := versionInfo{
		ClientVersion: opts.Version,
		BuildDate:     opts.BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(opts.Output)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "text":
		fmt.Fprintf(opts.Output, "Client Version: %s\n", info.ClientVersion)
		if info.BuildDate != "" && info.BuildDate != "unknown" {
			fmt.Fprintf(opts.Output, "Built: %s\n", info.BuildDate)
		}
		fmt.Fprintf(opts.Output, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(opts.Output, "Platform: %s\n", info.Platform)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected text or json)", outputFormat)
	}
}
