package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// FileStore keeps credentials in a mode-0600 JSON file. It is the
// fallback for environments without a usable keyring (CI, containers).
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path, or at the XDG default
// location when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultCredentialsPath()
	}
	return &FileStore{path: path}
}

// DefaultCredentialsPath returns the XDG-compliant credentials file
// location.
func DefaultCredentialsPath() string {
	return filepath.Join(xdg.ConfigHome, "apidogctl", "credentials.json")
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the credentials file with restricted permissions.
func (f *FileStore) Save(_ context.Context, creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// Load reads the credentials file.
func (f *FileStore) Load(_ context.Context) (*Credentials, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

// Delete removes the credentials file.
func (f *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}
