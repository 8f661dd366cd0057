// Package helpers provides shared fixtures for integration tests: a
// mock service backend that publishes an OpenAPI schema, and a mock
// Apidog Cloud implementing the import and export endpoints.
package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// SampleSchema builds an OpenAPI 3.0 document with the given endpoint
// paths, encoded as JSON.
func SampleSchema(version string, paths ...string) []byte {
	pathItems := make(map[string]any, len(paths))
	for _, p := range paths {
		pathItems[p] = map[string]any{
			"get": map[string]any{
				"responses": map[string]any{
					"200": map[string]any{"description": "Success"},
				},
			},
		}
	}

	data, err := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Integration API", "version": version},
		"paths":   pathItems,
	})
	if err != nil {
		panic(err)
	}
	return data
}

// MockBackend is a fake service that publishes its OpenAPI schema at
// /api/schema/ the way a real backend does.
type MockBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	schema   []byte
	requests int
}

// NewMockBackend starts a backend serving schema.
func NewMockBackend(schema []byte) *MockBackend {
	b := &MockBackend{schema: schema}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schema/", b.handleSchema)
	b.server = httptest.NewServer(mux)
	return b
}

// URL returns the backend base URL.
func (b *MockBackend) URL() string {
	return b.server.URL
}

// Close shuts the backend down.
func (b *MockBackend) Close() {
	b.server.Close()
}

// RequestCount returns how many schema fetches the backend served.
func (b *MockBackend) RequestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func (b *MockBackend) handleSchema(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests++
	schema := b.schema
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(schema)
}

// CloudRequest records one call against the mock cloud.
type CloudRequest struct {
	Method    string
	Path      string
	Token     string
	ProjectID string
	Action    string
	Body      []byte
}

// MockCloud fakes the two Apidog Cloud endpoints the CLI talks to.
// Pushed schemas are stored and served back by the export endpoint, so
// a push followed by a pull round-trips.
type MockCloud struct {
	server *httptest.Server

	mu       sync.Mutex
	project  string
	token    string
	schema   []byte
	requests []CloudRequest
}

// NewMockCloud starts a cloud knowing a single project/token pair.
// seed, when non-nil, is the schema served before anything is pushed.
func NewMockCloud(project, token string, seed []byte) *MockCloud {
	c := &MockCloud{project: project, token: token, schema: seed}

	mux := http.NewServeMux()
	mux.HandleFunc("/projects/", c.handleProjects)
	c.server = httptest.NewServer(mux)
	return c
}

// URL returns the cloud API base URL.
func (c *MockCloud) URL() string {
	return c.server.URL
}

// Close shuts the cloud down.
func (c *MockCloud) Close() {
	c.server.Close()
}

// Requests returns a copy of all recorded calls.
func (c *MockCloud) Requests() []CloudRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CloudRequest{}, c.requests...)
}

// Schema returns the schema the cloud currently holds.
func (c *MockCloud) Schema() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schema
}

func (c *MockCloud) handleProjects(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	token := bearerToken(r)
	projectID, action := splitProjectPath(r.URL.Path)

	c.mu.Lock()
	c.requests = append(c.requests, CloudRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		Token:     token,
		ProjectID: projectID,
		Action:    action,
		Body:      body,
	})
	c.mu.Unlock()

	if token != c.token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		return
	}
	if projectID != c.project {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}

	switch action {
	case "import-openapi":
		c.handleImport(w, body)
	case "export-openapi":
		c.handleExport(w)
	default:
		http.NotFound(w, r)
	}
}

func (c *MockCloud) handleImport(w http.ResponseWriter, body []byte) {
	var payload struct {
		Input struct {
			Data string `json:"data"`
		} `json:"input"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Input.Data == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing schema data"})
		return
	}

	c.mu.Lock()
	c.schema = []byte(payload.Input.Data)
	c.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (c *MockCloud) handleExport(w http.ResponseWriter) {
	c.mu.Lock()
	schema := c.schema
	c.mu.Unlock()

	if schema == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "project has no schema"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(schema)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}

// splitProjectPath pulls the project ID and operation out of
// /projects/{id}/{action}.
func splitProjectPath(path string) (projectID, action string) {
	rest := strings.TrimPrefix(path, "/projects/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
