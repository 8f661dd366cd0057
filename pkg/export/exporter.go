// Package export fetches the OpenAPI schema a running service
// publishes on its introspection endpoint and writes it to the output
// directory using the timestamped naming scheme the rest of the sync
// workflow relies on.
package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ennam/apidogctl/pkg/schema"
)

// File naming scheme for the output directory.
const (
	timestampLayout = "20060102_150405"
	schemaBaseName  = "openapi_schema"
	pulledBaseName  = "openapi_from_apidog"
)

// DefaultServerURL is where a locally running service is assumed to
// listen when the schema endpoint is a bare path.
const DefaultServerURL = "http://localhost:8000"

// Exporter fetches schema documents from a service's schema endpoint.
type Exporter struct {
	// Endpoint is the absolute URL of the schema endpoint.
	Endpoint string
	// HTTPClient is used for the fetch. Defaults to a plain client.
	HTTPClient *http.Client
	// UserAgent identifies the tool to the service. Optional.
	UserAgent string
	// Now supplies timestamps for file naming. Defaults to time.Now.
	Now func() time.Time
}

// ResolveEndpoint turns a configured schema endpoint into an absolute
// URL. Absolute endpoints pass through untouched; bare paths are
// joined onto the server base URL, preserving any trailing slash the
// endpoint carries.
func ResolveEndpoint(server, endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return strings.TrimRight(server, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Fetch GETs the schema endpoint and decodes the response document.
func (e *Exporter) Fetch(ctx context.Context) (schema.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if e.UserAgent != "" {
		req.Header.Set("User-Agent", e.UserAgent)
	}

	client := e.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch schema: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema response: %w", err)
	}

	doc, err := schema.Decode(body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteOptions control where and how an exported schema lands.
type WriteOptions struct {
	// Dir is the output directory.
	Dir string
	// Format selects JSON or YAML output.
	Format schema.Format
	// Filename overrides the timestamped name when set.
	Filename string
	// Indent is the JSON indentation width.
	Indent int
}

// Result reports the files an export produced.
type Result struct {
	// Path is the timestamped (or custom-named) schema file.
	Path string
	// LatestPath is the rolling "latest" copy.
	LatestPath string
}

// Write stores the document twice: under its timestamped (or custom)
// name and as the rolling latest copy other commands default to.
func (e *Exporter) Write(doc schema.Document, opts WriteOptions) (Result, error) {
	filename := opts.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.%s", schemaBaseName, e.now().Format(timestampLayout), opts.Format.Ext())
	}

	path := filepath.Join(opts.Dir, filename)
	if err := schema.WriteFile(path, doc, opts.Format, opts.Indent); err != nil {
		return Result{}, err
	}

	latestPath := LatestPath(opts.Dir, opts.Format)
	if err := schema.WriteFile(latestPath, doc, opts.Format, opts.Indent); err != nil {
		return Result{}, err
	}

	return Result{Path: path, LatestPath: latestPath}, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// LatestPath returns the rolling latest schema file for a format.
func LatestPath(dir string, format schema.Format) string {
	return filepath.Join(dir, fmt.Sprintf("%s_latest.%s", schemaBaseName, format.Ext()))
}

// PulledPath returns the timestamped name for a schema pulled from
// Apidog Cloud.
func PulledPath(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", pulledBaseName, at.Format(timestampLayout)))
}
