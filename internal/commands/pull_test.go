package commands

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPullWritesSchema(t *testing.T) {
	cloud := newFakeApidog(t, sampleSchemaJSON)
	output := filepath.Join(t.TempDir(), "pulled.json")

	opts, out := testOptions(t, cloud.config(nil))

	if err := execute(t, opts, "pull", "--output", output); err != nil {
		t.Fatalf("pull failed: %v", err)
	}

	var doc map[string]any
	decodeJSONFile(t, output, &doc)

	paths, ok := doc["paths"].(map[string]any)
	if !ok || len(paths) != 2 {
		t.Errorf("expected 2 paths in pulled schema, got %v", doc["paths"])
	}

	for _, want := range []string{
		"Pulling from APIDOG project p-1...",
		"Schema pulled to: " + output,
		"Endpoints: 2",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}

	if len(cloud.calls) != 1 {
		t.Fatalf("expected 1 API call, got %d", len(cloud.calls))
	}
	if cloud.calls[0].Path != "/projects/p-1/export-openapi" {
		t.Errorf("unexpected path %q", cloud.calls[0].Path)
	}
}

func TestPullDefaultsToTimestampedName(t *testing.T) {
	cloud := newFakeApidog(t, sampleSchemaJSON)
	dir := t.TempDir()

	opts, _ := testOptions(t, cloud.config(map[string]any{
		"OUTPUT_DIR": dir,
	}))

	if err := execute(t, opts, "pull"); err != nil {
		t.Fatalf("pull failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}

	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "openapi_from_apidog_") && strings.HasSuffix(e.Name(), ".json") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected openapi_from_apidog_<ts>.json in %s", dir)
	}
}

func TestPullUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	opts, _ := testOptions(t, map[string]any{
		"API_BASE_URL": server.URL,
		"PROJECT_ID":   "p-1",
		"TOKEN":        "bad",
	})

	err := execute(t, opts, "pull", "--output", filepath.Join(t.TempDir(), "out.json"))
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("expected unauthorized error, got %v", err)
	}
}

func TestPullProjectNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	opts, _ := testOptions(t, map[string]any{
		"API_BASE_URL": server.URL,
		"PROJECT_ID":   "missing",
		"TOKEN":        "tok",
	})

	err := execute(t, opts, "pull", "--output", filepath.Join(t.TempDir(), "out.json"))
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "project not found") {
		t.Errorf("expected project-not-found error, got %v", err)
	}
}

func TestPullMissingCredentials(t *testing.T) {
	opts, out := testOptions(t, map[string]any{})

	err := execute(t, opts, "pull")
	if err == nil {
		t.Fatal("expected error without credentials")
	}
	if !strings.Contains(out.String(), "APIDOG credentials required:") {
		t.Errorf("expected credentials help, got:\n%s", out.String())
	}
}
