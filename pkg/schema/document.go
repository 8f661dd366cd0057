// Package schema works with OpenAPI documents as loosely typed maps.
//
// The sync workflow (export, push, pull, compare) never needs a full
// object model of the schema: documents are moved around verbatim and
// only the top-level "openapi", "info", "paths" and
// "components.schemas" keys are inspected. Keeping the document as a
// map preserves every vendor extension byte-for-byte across the trip
// to Apidog Cloud. Deep structural validation is available separately
// through Validate, which parses the document with kin-openapi.
package schema

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Document is an OpenAPI schema held as decoded JSON/YAML. Values are
// opaque except for the handful of well-known top-level keys.
type Document map[string]any

// requiredFields are the top-level keys every usable schema carries.
var requiredFields = []string{"openapi", "info", "paths"}

// Paths returns the "paths" object. A missing or malformed paths key
// yields an empty map, never nil semantics to worry about.
func (d Document) Paths() map[string]any {
	if paths, ok := d["paths"].(map[string]any); ok {
		return paths
	}
	return map[string]any{}
}

// PathNames returns the endpoint paths in lexicographic order.
func (d Document) PathNames() []string {
	paths := d.Paths()
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns the "info" object, creating it when absent so callers
// can stamp metadata into it.
func (d Document) Info() map[string]any {
	if info, ok := d["info"].(map[string]any); ok {
		return info
	}
	info := map[string]any{}
	d["info"] = info
	return info
}

// Version returns info.version, or the empty string when the schema
// does not declare one. Unlike Info, it never modifies the document.
func (d Document) Version() string {
	if info, ok := d["info"].(map[string]any); ok {
		if v, ok := info["version"].(string); ok {
			return v
		}
	}
	return ""
}

// ComponentSchemaCount returns the number of entries under
// components.schemas.
func (d Document) ComponentSchemaCount() int {
	components, ok := d["components"].(map[string]any)
	if !ok {
		return 0
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return 0
	}
	return len(schemas)
}

// Stats summarizes a schema for display after export and pull.
type Stats struct {
	Version     string
	PathCount   int
	SchemaCount int
}

// Stats collects the display summary for the document.
func (d Document) Stats() Stats {
	return Stats{
		Version:     d.Version(),
		PathCount:   len(d.Paths()),
		SchemaCount: d.ComponentSchemaCount(),
	}
}

// StampGenerated records when and by what tool the schema was
// exported, under the x-generated-at / x-generated-by info extensions.
func (d Document) StampGenerated(at time.Time, tool string) {
	info := d.Info()
	info["x-generated-at"] = at.Format(time.RFC3339)
	info["x-generated-by"] = tool
}

// CheckRequiredFields verifies the top-level keys every OpenAPI
// document must carry. It reports all missing fields at once.
func (d Document) CheckRequiredFields() error {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := d[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
