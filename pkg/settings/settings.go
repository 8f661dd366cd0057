// Package settings resolves apidogctl configuration from a fixed set of
// named keys. Each key is resolved through the same chain: an explicit
// config snapshot (see Provider), then an environment variable for the
// keys that support one, then a built-in default. Resolved values are
// memoized until Reset is called.
package settings

// Key names a configurable setting. The set of valid keys is fixed;
// resolving any other key fails with ErrUnknownKey.
type Key string

// All valid setting keys.
const (
	KeyOutputDir      Key = "OUTPUT_DIR"
	KeySchemaEndpoint Key = "SCHEMA_ENDPOINT"
	KeyProjectID      Key = "PROJECT_ID"
	KeyToken          Key = "TOKEN"
	KeyAPIVersion     Key = "API_VERSION"
	KeyAPIBaseURL     Key = "API_BASE_URL"
	KeyTimeout        Key = "TIMEOUT"
	KeyEnvironments   Key = "ENVIRONMENTS"
)

// Environment variables consulted for the credential-ish keys. Only
// these three keys have an environment fallback; everything else comes
// from the config snapshot or the built-in default.
const (
	EnvProjectID = "APIDOG_PROJECT_ID"
	EnvToken     = "APIDOG_TOKEN"
	EnvOutputDir = "APIDOG_OUTPUT_DIR"
)

// Built-in defaults for the Apidog Cloud API.
const (
	DefaultSchemaEndpoint = "/api/schema/"
	DefaultAPIVersion     = "2024-03-28"
	DefaultAPIBaseURL     = "https://api.apidog.com/v1"
	DefaultTimeoutSeconds = 60
)

// envVars maps the keys with an environment fallback to their variable
// name. A variable that is set but empty still wins over the default.
var envVars = map[Key]string{
	KeyProjectID: EnvProjectID,
	KeyToken:     EnvToken,
	KeyOutputDir: EnvOutputDir,
}

// Environment describes one target environment written out by the
// env-config command and consumed by Apidog's environment import.
type Environment struct {
	Name      string            `json:"name" yaml:"name" mapstructure:"name"`
	BaseURL   string            `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Variables map[string]string `json:"variables" yaml:"variables" mapstructure:"variables"`
}

// defaultEnvironments returns a fresh copy so callers can adjust
// entries without touching shared state.
func defaultEnvironments() map[string]Environment {
	return map[string]Environment{
		"local": {
			Name:      "Local Development",
			BaseURL:   "http://localhost:8000",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"development": {
			Name:      "Development",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"staging": {
			Name:      "Staging",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"production": {
			Name:      "Production",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
	}
}

// defaultValue returns the built-in default for key. The second return
// reports whether key is a valid setting at all.
func defaultValue(key Key) (any, bool) {
	switch key {
	case KeyOutputDir:
		return "", true
	case KeySchemaEndpoint:
		return DefaultSchemaEndpoint, true
	case KeyProjectID:
		return "", true
	case KeyToken:
		return "", true
	case KeyAPIVersion:
		return DefaultAPIVersion, true
	case KeyAPIBaseURL:
		return DefaultAPIBaseURL, true
	case KeyTimeout:
		return DefaultTimeoutSeconds, true
	case KeyEnvironments:
		return defaultEnvironments(), true
	}
	return nil, false
}
