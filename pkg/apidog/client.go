// Package apidog is a client for the two Apidog Cloud endpoints the
// sync workflow needs: importing an OpenAPI schema into a project and
// exporting the project's schema back out. The API surface is fixed;
// this is not a general Apidog SDK.
package apidog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/ennam/apidogctl/pkg/schema"
)

// DefaultBaseURL is the Apidog Cloud API root.
const DefaultBaseURL = "https://api.apidog.com/v1"

// webAppURL is the browser-facing application, distinct from the API.
const webAppURL = "https://app.apidog.com"

// Body excerpt limits for error reporting. Import failures tend to
// carry longer validation messages, so they get more room.
const (
	importBodyExcerptLimit = 500
	exportBodyExcerptLimit = 200
)

const mergeKeepNewer = "MERGE_KEEP_NEWER"

// Options configure a Client.
type Options struct {
	// BaseURL overrides DefaultBaseURL. Trailing slashes are trimmed.
	BaseURL string
	// APIVersion is sent as the X-Apidog-Api-Version header.
	APIVersion string
	// Token is the Apidog personal API token. It is carried by an
	// oauth2 static token source so every request is authenticated
	// at the transport level.
	Token string
	// Timeout bounds each request.
	Timeout time.Duration
	// HTTPClient, when set, is used as-is and Token/Timeout are
	// ignored. Intended for tests.
	HTTPClient *http.Client
}

// Client talks to the Apidog Cloud API for a single account.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// NewClient builds a client from opts.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = opts.Timeout
	}

	return &Client{
		baseURL:    baseURL,
		apiVersion: opts.APIVersion,
		httpClient: httpClient,
	}
}

// ProjectWebURL returns the Apidog web application page for a project.
func ProjectWebURL(projectID string) string {
	return fmt.Sprintf("%s/project/%s", webAppURL, projectID)
}

type importRequest struct {
	Input   importInput   `json:"input"`
	Options importOptions `json:"options"`
}

type importInput struct {
	Data string `json:"data"`
}

type importOptions struct {
	EndpointOverwriteBehavior     string `json:"endpointOverwriteBehavior"`
	SchemaOverwriteBehavior       string `json:"schemaOverwriteBehavior"`
	UpdateFolderOfChangedEndpoint bool   `json:"updateFolderOfChangedEndpoint"`
}

type exportRequest struct {
	Scope        exportScope   `json:"scope"`
	Options      exportOptions `json:"options"`
	OASVersion   string        `json:"oasVersion"`
	ExportFormat string        `json:"exportFormat"`
}

type exportScope struct {
	Type string `json:"type"`
}

type exportOptions struct {
	IncludeApidogExtensionProperties bool `json:"includeApidogExtensionProperties"`
	AddFoldersToTags                 bool `json:"addFoldersToTags"`
}

// ImportOpenAPI uploads schema text into the project, merging with
// what is already there (newer definitions win on both endpoint and
// schema collisions). The schema is sent verbatim: whatever bytes were
// exported locally are what Apidog receives.
func (c *Client) ImportOpenAPI(ctx context.Context, projectID, schemaText string) error {
	payload := importRequest{
		Input: importInput{Data: schemaText},
		Options: importOptions{
			EndpointOverwriteBehavior:     mergeKeepNewer,
			SchemaOverwriteBehavior:       mergeKeepNewer,
			UpdateFolderOfChangedEndpoint: true,
		},
	}

	url := fmt.Sprintf("%s/projects/%s/import-openapi", c.baseURL, projectID)
	resp, body, err := c.post(ctx, url, payload)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       excerpt(body, importBodyExcerptLimit),
		}
	}
	return nil
}

// ExportOpenAPI downloads the project's full schema as an OpenAPI 3.0
// JSON document.
func (c *Client) ExportOpenAPI(ctx context.Context, projectID string) (schema.Document, error) {
	payload := exportRequest{
		Scope: exportScope{Type: "ALL"},
		Options: exportOptions{
			IncludeApidogExtensionProperties: false,
			AddFoldersToTags:                 false,
		},
		OASVersion:   "3.0",
		ExportFormat: "JSON",
	}

	url := fmt.Sprintf("%s/projects/%s/export-openapi", c.baseURL, projectID)
	resp, body, err := c.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var doc schema.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse exported schema: %w", err)
		}
		return doc, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrProjectNotFound
	default:
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       excerpt(body, exportBodyExcerptLimit),
		}
	}
}

// post sends a JSON payload and returns the response with its body
// fully read. Status handling is left to the caller.
func (c *Client) post(ctx context.Context, url string, payload any) (*http.Response, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiVersion != "" {
		req.Header.Set("X-Apidog-Api-Version", c.apiVersion)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp, body, nil
}
