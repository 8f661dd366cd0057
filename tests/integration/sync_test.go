// Package integration drives the full command tree against real HTTP
// servers and real files: the complete export, push, pull, compare
// cycle as a user would run it.
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ennam/apidogctl/internal/commands"
	"github.com/ennam/apidogctl/pkg/credentials"
	"github.com/ennam/apidogctl/pkg/settings"
	"github.com/ennam/apidogctl/tests/helpers"
)

// cli wires a command tree with injected dependencies, mirroring what
// main does but with in-memory stand-ins.
type cli struct {
	opts *commands.Options
	out  *bytes.Buffer
}

func newCLI(config map[string]any) *cli {
	out := &bytes.Buffer{}
	return &cli{
		opts: &commands.Options{
			Output:      out,
			Resolver:    settings.NewResolver(settings.StaticProvider(config)),
			Store:       credentials.NewMemoryStore(),
			BrowserOpen: func(string) error { return nil },
			Version:     "integration",
		},
		out: out,
	}
}

// run executes one command invocation on a fresh command tree and
// returns its printed output.
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	c.out.Reset()
	root := commands.NewRootCommand(c.opts)
	root.SetArgs(append(args, "--no-color"))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return c.out.String(), err
}

func TestSyncRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	backend := helpers.NewMockBackend(helpers.SampleSchema("2.0.0", "/api/orders/", "/api/users/"))
	defer backend.Close()

	cloud := helpers.NewMockCloud("it-project", "it-token", nil)
	defer cloud.Close()

	outputDir := t.TempDir()
	cli := newCLI(map[string]any{
		"API_BASE_URL": cloud.URL(),
		"PROJECT_ID":   "it-project",
		"TOKEN":        "it-token",
		"OUTPUT_DIR":   outputDir,
	})

	// Export the schema from the running backend.
	out, err := cli.run(t, "export", "--server", backend.URL())
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if backend.RequestCount() != 1 {
		t.Errorf("expected one schema fetch, got %d", backend.RequestCount())
	}

	latest := filepath.Join(outputDir, "openapi_schema_latest.json")
	if _, err := os.Stat(latest); err != nil {
		t.Fatalf("expected latest schema at %s: %v", latest, err)
	}

	// The exported file passes validation.
	if out, err := cli.run(t, "validate", "--strict"); err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}

	// Push it to the cloud. Without --file push takes a fresh export,
	// so it needs the backend too.
	out, err = cli.run(t, "push", "--server", backend.URL())
	if err != nil {
		t.Fatalf("push failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No schema file specified, exporting...") {
		t.Errorf("expected implicit export notice, got:\n%s", out)
	}
	if !strings.Contains(out, "Successfully pushed to APIDOG!") {
		t.Errorf("expected push confirmation, got:\n%s", out)
	}

	requests := cloud.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one cloud call, got %d", len(requests))
	}
	if requests[0].Token != "it-token" || requests[0].ProjectID != "it-project" {
		t.Errorf("unexpected cloud call: %+v", requests[0])
	}
	if requests[0].Action != "import-openapi" {
		t.Errorf("expected an import, got %q", requests[0].Action)
	}

	// Pull it back down and check it is the same document.
	pulledPath := filepath.Join(outputDir, "pulled.json")
	out, err = cli.run(t, "pull", "--output", pulledPath)
	if err != nil {
		t.Fatalf("pull failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(pulledPath)
	if err != nil {
		t.Fatalf("failed to read pulled schema: %v", err)
	}
	var pulled map[string]any
	if err := json.Unmarshal(data, &pulled); err != nil {
		t.Fatalf("pulled schema is not valid JSON: %v", err)
	}
	if _, ok := pulled["paths"].(map[string]any)["/api/orders/"]; !ok {
		t.Error("pulled schema is missing /api/orders/")
	}

	// Local and cloud now agree.
	out, err = cli.run(t, "compare")
	if err != nil {
		t.Fatalf("compare failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Schemas are in sync!") {
		t.Errorf("expected schemas in sync, got:\n%s", out)
	}
}

func TestSyncDetectsDrift(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	backend := helpers.NewMockBackend(helpers.SampleSchema("2.0.0", "/api/orders/", "/api/users/"))
	defer backend.Close()

	// The cloud has an older schema with a retired endpoint.
	cloud := helpers.NewMockCloud("it-project", "it-token",
		helpers.SampleSchema("1.9.0", "/api/users/", "/api/legacy/"))
	defer cloud.Close()

	outputDir := t.TempDir()
	cli := newCLI(map[string]any{
		"API_BASE_URL": cloud.URL(),
		"PROJECT_ID":   "it-project",
		"TOKEN":        "it-token",
		"OUTPUT_DIR":   outputDir,
	})

	if out, err := cli.run(t, "export", "--server", backend.URL()); err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	out, err := cli.run(t, "compare")
	if err != nil {
		t.Fatalf("compare failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"SCHEMA COMPARISON REPORT",
		"Local endpoints:  2",
		"Cloud endpoints:  2",
		"Common endpoints: 1",
		"[+] Only in LOCAL (1):",
		"/api/orders/",
		"[-] Only in CLOUD (1):",
		"/api/legacy/",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Schemas are in sync!") {
		t.Errorf("drifted schemas reported as in sync:\n%s", out)
	}
}

func TestSyncRejectsBadToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cloud := helpers.NewMockCloud("it-project", "it-token",
		helpers.SampleSchema("1.0.0", "/api/users/"))
	defer cloud.Close()

	outputDir := t.TempDir()
	cli := newCLI(map[string]any{
		"API_BASE_URL": cloud.URL(),
		"PROJECT_ID":   "it-project",
		"TOKEN":        "wrong-token",
		"OUTPUT_DIR":   outputDir,
	})

	out, err := cli.run(t, "pull")
	if err == nil {
		t.Fatalf("expected pull to fail with a bad token, got:\n%s", out)
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

// TestCommandSurface checks the top-level help and version wiring the
// way a packaging smoke test would.
func TestCommandSurface(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOutput []string
	}{
		{
			name:       "root help",
			args:       []string{"--help"},
			wantOutput: []string{"Usage:", "Available Commands:", "export", "push", "pull", "compare"},
		},
		{
			name:       "export help",
			args:       []string{"export", "--help"},
			wantOutput: []string{"--format", "--server", "--output"},
		},
		{
			name:       "auth help",
			args:       []string{"auth", "--help"},
			wantOutput: []string{"set", "status", "clear"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := newCLI(map[string]any{})
			root := commands.NewRootCommand(cli.opts)

			helpOut := &bytes.Buffer{}
			root.SetArgs(tt.args)
			root.SetOut(helpOut)
			root.SetErr(helpOut)
			if err := root.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, want := range tt.wantOutput {
				if !strings.Contains(helpOut.String(), want) {
					t.Errorf("help output missing %q:\n%s", want, helpOut.String())
				}
			}
		})
	}
}
