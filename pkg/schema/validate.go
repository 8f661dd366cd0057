package schema

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate runs full OpenAPI 3.x validation over raw schema bytes
// using kin-openapi. This goes well beyond CheckRequiredFields: refs
// are resolved and every object is checked against the specification.
func Validate(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
