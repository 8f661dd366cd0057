package apidog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure modes callers branch on.
var (
	// ErrUnauthorized means the API token was rejected.
	ErrUnauthorized = errors.New("unauthorized: invalid token")
	// ErrProjectNotFound means the project ID does not exist or the
	// token cannot see it.
	ErrProjectNotFound = errors.New("project not found: check project ID")
)

// StatusError reports an unexpected HTTP status from the Apidog API,
// with a bounded excerpt of the response body for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apidog API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("apidog API returned status %d: %s", e.StatusCode, e.Body)
}

// excerpt truncates a response body for inclusion in errors and logs.
func excerpt(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit])
}
