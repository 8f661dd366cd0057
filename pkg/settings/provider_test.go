package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileProviderReadsYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	content := `project_id: p-123
token: secret
timeout: 30
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	p := &FileProvider{Path: configPath}

	snapshot, err := p.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot["project_id"] != "p-123" {
		t.Errorf("expected project_id 'p-123', got %v", snapshot["project_id"])
	}
	if snapshot["token"] != "secret" {
		t.Errorf("expected token 'secret', got %v", snapshot["token"])
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	p := &FileProvider{Path: filepath.Join(t.TempDir(), "nonexistent.yaml")}

	snapshot, err := p.Settings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("expected empty snapshot, got %v", snapshot)
	}
}

func TestFileProviderInvalidFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	content := `project_id
  broken yaml here
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	p := &FileProvider{Path: configPath}

	if _, err := p.Settings(); err == nil {
		t.Error("expected error but got none")
	}
}

func TestFileProviderFeedsResolver(t *testing.T) {
	clearApidogEnv(t)

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	content := `PROJECT_ID: cfg-project
API_BASE_URL: https://apidog.internal/v1
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(&FileProvider{Path: configPath})

	id, err := r.String(KeyProjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "cfg-project" {
		t.Errorf("expected 'cfg-project', got %q", id)
	}

	base, err := r.APIBaseURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != "https://apidog.internal/v1" {
		t.Errorf("expected configured base URL, got %q", base)
	}

	// Keys absent from the file keep their defaults.
	endpoint, err := r.SchemaEndpoint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if endpoint != DefaultSchemaEndpoint {
		t.Errorf("expected default endpoint, got %q", endpoint)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if !strings.HasSuffix(path, filepath.Join("apidogctl", "config.yaml")) {
		t.Errorf("expected apidogctl config path, got %s", path)
	}
}
