package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// ErrUnknownKey is returned when Get is asked for a key outside the
// fixed setting set. This signals a programmer error, not bad user
// input, so callers generally let it surface immediately.
var ErrUnknownKey = errors.New("invalid apidog setting")

// Resolver resolves setting values through the documented chain:
// config snapshot, then environment variable (OUTPUT_DIR, PROJECT_ID
// and TOKEN only), then built-in default. Each key is resolved once
// and memoized; Reset clears the memos and the snapshot so changed
// configuration or environment is picked up on the next access.
//
// A Resolver is safe for concurrent use.
type Resolver struct {
	mu       sync.Mutex
	provider Provider
	snapshot map[string]any
	loaded   bool
	cache    map[Key]any
}

// NewResolver creates a resolver backed by provider. A nil provider
// means no explicit configuration: only environment variables and
// defaults apply.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    make(map[Key]any),
	}
}

// Get resolves key, memoizing the result. The same value is returned
// on every call until Reset, even if the environment or the provider's
// backing data changes in between.
func (r *Resolver) Get(key Key) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache[key]; ok {
		return v, nil
	}

	v, err := r.lookupLocked(key)
	if err != nil {
		return nil, err
	}

	r.cache[key] = v
	return v, nil
}

// Reset drops every memoized value and the config snapshot. The next
// Get consults the provider and the environment again. Calling Reset
// repeatedly is harmless.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = make(map[Key]any)
	r.snapshot = nil
	r.loaded = false
}

// lookupLocked walks the resolution chain for key. Caller holds r.mu.
func (r *Resolver) lookupLocked(key Key) (any, error) {
	def, ok := defaultValue(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if err := r.loadSnapshotLocked(); err != nil {
		return nil, err
	}

	// A key present in the snapshot wins outright, whatever its value.
	if v, ok := r.snapshot[string(key)]; ok {
		return v, nil
	}

	// Environment fallback for the three keys that support one. A
	// variable that is set but empty still takes precedence over the
	// default.
	if name, ok := envVars[key]; ok {
		if v, ok := os.LookupEnv(name); ok {
			return v, nil
		}
	}

	return def, nil
}

// loadSnapshotLocked reads the provider once per reset cycle and
// normalizes its keys to the canonical upper-case form (viper
// lower-cases keys on load). Caller holds r.mu.
func (r *Resolver) loadSnapshotLocked() error {
	if r.loaded {
		return nil
	}

	r.snapshot = make(map[string]any)
	if r.provider != nil {
		raw, err := r.provider.Settings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		for k, v := range raw {
			r.snapshot[strings.ToUpper(k)] = v
		}
	}

	r.loaded = true
	return nil
}

// String resolves key and coerces the value to a string. Nil values
// (explicit nulls in a config file) coerce to the empty string.
func (r *Resolver) String(key Key) (string, error) {
	v, err := r.Get(key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("setting %s is not a string: %w", key, err)
	}
	return s, nil
}

// Int resolves key and coerces the value to an int.
func (r *Resolver) Int(key Key) (int, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}
	return n, nil
}

// OutputDir returns the directory schema files are written to. An
// explicitly configured OUTPUT_DIR wins; otherwise the default is
// <projectRoot>/apidog, except that a project root named "app" (the
// usual container layout) resolves to apidog/ next to it rather than
// inside it. The directory is not created.
func (r *Resolver) OutputDir(projectRoot string) (string, error) {
	dir, err := r.String(KeyOutputDir)
	if err != nil {
		return "", err
	}
	if dir != "" {
		return dir, nil
	}

	if filepath.Base(projectRoot) == "app" {
		return filepath.Join(filepath.Dir(projectRoot), "apidog"), nil
	}
	return filepath.Join(projectRoot, "apidog"), nil
}

// Credentials returns the Apidog project ID and token, letting
// non-empty call-site overrides (typically command-line flags) win
// over resolved settings. An empty override counts as absent and
// falls through to the resolver.
func (r *Resolver) Credentials(projectID, token string) (string, string, error) {
	if projectID == "" {
		v, err := r.String(KeyProjectID)
		if err != nil {
			return "", "", err
		}
		projectID = v
	}

	if token == "" {
		v, err := r.String(KeyToken)
		if err != nil {
			return "", "", err
		}
		token = v
	}

	return projectID, token, nil
}

// SchemaEndpoint returns the local schema endpoint (path or absolute URL).
func (r *Resolver) SchemaEndpoint() (string, error) {
	return r.String(KeySchemaEndpoint)
}

// APIBaseURL returns the Apidog Cloud API base URL.
func (r *Resolver) APIBaseURL() (string, error) {
	return r.String(KeyAPIBaseURL)
}

// APIVersion returns the Apidog API version header value.
func (r *Resolver) APIVersion() (string, error) {
	return r.String(KeyAPIVersion)
}

// Timeout returns the HTTP timeout. TIMEOUT is stored in seconds.
func (r *Resolver) Timeout() (time.Duration, error) {
	secs, err := r.Int(KeyTimeout)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// Environments returns the configured target environments. Snapshot
// values arrive as raw maps from YAML or JSON and are decoded into the
// typed form; the built-in default is already typed.
func (r *Resolver) Environments() (map[string]Environment, error) {
	v, err := r.Get(KeyEnvironments)
	if err != nil {
		return nil, err
	}

	if envs, ok := v.(map[string]Environment); ok {
		return envs, nil
	}

	var envs map[string]Environment
	if err := mapstructure.Decode(v, &envs); err != nil {
		return nil, fmt.Errorf("failed to decode environments: %w", err)
	}
	return envs, nil
}
