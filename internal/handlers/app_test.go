package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/handlers"
	"github.com/thruflo/awraamba/internal/i18n"
)

func loadTestCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"greeting": "Hello"}`), 0o644)
	if err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
	err = os.WriteFile(filepath.Join(dir, "am.json"), []byte(`{"greeting": "ሰላም"}`), 0o644)
	if err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	catalog, err := i18n.Load(dir, []string{"en", "am"})
	if err != nil {
		t.Fatalf("Failed to load catalogs: %v", err)
	}
	return catalog
}

// TestShell tests the GET / endpoint
func TestShell(t *testing.T) {
	app := newTestApp()
	handler := &handlers.AppHandler{Catalog: loadTestCatalog(t)}
	app.Get("/", handler.Shell)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Expected an html response, got %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<div id=\"app\">") {
		t.Error("Expected the app shell markup")
	}
}

// TestClientStrings tests the Accept-Language negotiated catalog endpoint
func TestClientStrings(t *testing.T) {
	app := newTestApp()
	handler := &handlers.AppHandler{Catalog: loadTestCatalog(t)}
	app.Get("/client_strings.json", handler.ClientStrings)

	cases := []struct {
		acceptLanguage string
		language       string
		greeting       string
	}{
		{"", "en", "Hello"},
		{"am-ET, en;q=0.8", "am", "ሰላም"},
		{"fr", "en", "Hello"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/client_strings.json", nil)
		if tc.acceptLanguage != "" {
			req.Header.Set("Accept-Language", tc.acceptLanguage)
		}

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}
		if lang := resp.Header.Get("Content-Language"); lang != tc.language {
			t.Errorf("Expected Content-Language %q for %q, got %q", tc.language, tc.acceptLanguage, lang)
		}

		var strings map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&strings); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if strings["greeting"] != tc.greeting {
			t.Errorf("Expected greeting %q for %q, got %q", tc.greeting, tc.acceptLanguage, strings["greeting"])
		}
	}
}

// TestHealth tests the GET /api/health endpoint
func TestHealth(t *testing.T) {
	db := setupTestDB(t)

	app := newTestApp()
	handler := &handlers.AppHandler{
		DB: db,
		Cfg: &config.Config{
			DBType:              "sqlite",
			DBDatabase:          ":memory:",
			ThumbnailsDirectory: t.TempDir(),
		},
		Catalog: loadTestCatalog(t),
	}
	app.Get("/api/health", handler.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil), 5000)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["status"] != "healthy" {
		t.Errorf("Expected a healthy status, got %v", result["status"])
	}
	if result["database"] != "ok" {
		t.Errorf("Expected database ok, got %v", result["database"])
	}
	if result["thumbnails"] != "ok" {
		t.Errorf("Expected thumbnails ok, got %v", result["thumbnails"])
	}
	if result["mail"] != "disabled" {
		t.Errorf("Expected mail disabled without a token, got %v", result["mail"])
	}
}

// TestHealthUnwritableThumbnails tests that broken storage is unhealthy
func TestHealthUnwritableThumbnails(t *testing.T) {
	db := setupTestDB(t)

	app := newTestApp()
	handler := &handlers.AppHandler{
		DB: db,
		Cfg: &config.Config{
			DBType:              "sqlite",
			DBDatabase:          ":memory:",
			ThumbnailsDirectory: filepath.Join(t.TempDir(), "does", "not", "exist"),
		},
		Catalog: loadTestCatalog(t),
	}
	app.Get("/api/health", handler.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil), 5000)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 503 {
		t.Fatalf("Expected status 503, got %d", resp.StatusCode)
	}
}
