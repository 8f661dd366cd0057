package benchmarks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ennam/apidogctl/pkg/apidog"
	"github.com/ennam/apidogctl/pkg/export"
	"github.com/ennam/apidogctl/pkg/settings"
)

// BenchmarkExportFetch benchmarks fetching and decoding a schema from a
// service's schema endpoint.
func BenchmarkExportFetch(b *testing.B) {
	schemaData := generateSchemaBytes(50)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(schemaData)
	}))
	defer server.Close()

	exporter := &export.Exporter{
		Endpoint:   server.URL + "/api/schema/",
		HTTPClient: server.Client(),
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := exporter.Fetch(ctx); err != nil {
			b.Fatalf("failed to fetch schema: %v", err)
		}
	}
}

// BenchmarkApidogImport benchmarks pushing a schema through the
// authenticated client, including the bearer transport and the JSON
// request envelope.
func BenchmarkApidogImport(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := apidog.NewClient(apidog.Options{
		BaseURL:    server.URL,
		APIVersion: "2024-03-28",
		Token:      "bench-token",
	})
	schemaText := string(generateSchemaBytes(50))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := client.ImportOpenAPI(ctx, "bench-project", schemaText); err != nil {
			b.Fatalf("failed to import schema: %v", err)
		}
	}
}

// BenchmarkApidogExport benchmarks pulling a project schema from the
// cloud API, including response decoding.
func BenchmarkApidogExport(b *testing.B) {
	schemaData := generateSchemaBytes(50)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(schemaData)
	}))
	defer server.Close()

	client := apidog.NewClient(apidog.Options{
		BaseURL:    server.URL,
		APIVersion: "2024-03-28",
		Token:      "bench-token",
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.ExportOpenAPI(ctx, "bench-project"); err != nil {
			b.Fatalf("failed to export schema: %v", err)
		}
	}
}

// BenchmarkSettingsGetMemoized benchmarks repeated reads of an already
// resolved setting, the common case inside a single command run.
func BenchmarkSettingsGetMemoized(b *testing.B) {
	resolver := settings.NewResolver(settings.StaticProvider{
		"PROJECT_ID": "bench-project",
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := resolver.String(settings.KeyProjectID); err != nil {
			b.Fatalf("failed to resolve setting: %v", err)
		}
	}
}

// BenchmarkSettingsResolveChain benchmarks a cold walk of the full
// resolution chain by resetting the memos every iteration.
func BenchmarkSettingsResolveChain(b *testing.B) {
	resolver := settings.NewResolver(settings.StaticProvider{
		"PROJECT_ID": "bench-project",
		"TIMEOUT":    60,
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resolver.Reset()
		if _, err := resolver.String(settings.KeyProjectID); err != nil {
			b.Fatalf("failed to resolve setting: %v", err)
		}
		if _, err := resolver.Timeout(); err != nil {
			b.Fatalf("failed to resolve timeout: %v", err)
		}
	}
}
