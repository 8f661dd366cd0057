package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Provider supplies the explicit configuration snapshot that sits at
// the top of the resolution chain. Implementations return the raw
// key/value map; the resolver treats it as read-only and reads it at
// most once between resets.
type Provider interface {
	Settings() (map[string]any, error)
}

// StaticProvider serves a fixed in-memory snapshot. Useful for tests
// and for embedding the resolver in other tools.
type StaticProvider map[string]any

// Settings returns the underlying map.
func (p StaticProvider) Settings() (map[string]any, error) {
	return p, nil
}

// FileProvider loads the snapshot from a YAML or JSON config file via
// viper. A missing file is not an error: the resolver then falls back
// to environment variables and defaults.
type FileProvider struct {
	// Path is the explicit config file location. When empty, the
	// XDG default path is used.
	Path string
}

// Settings reads and returns the config file contents.
func (p *FileProvider) Settings() (map[string]any, error) {
	path := p.Path
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]any{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return v.AllSettings(), nil
}

// DefaultConfigPath returns the XDG-compliant config file location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "apidogctl", "config.yaml")
}
