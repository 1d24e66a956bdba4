package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/handlers"
)

const testCSRFKey = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	posts, err := blog.Default()
	if err != nil {
		t.Fatalf("blog.Default() error = %v", err)
	}

	s, err := NewServer(handlers.Deps{
		Catalog: cat,
		Blog:    posts,
		Logger:  logging.Discard(),
	}, testCSRFKey)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewServer_Validation(t *testing.T) {
	if _, err := NewServer(handlers.Deps{}, "short"); err == nil {
		t.Error("expected error for short csrf key")
	}
	if _, err := NewServer(handlers.Deps{}, testCSRFKey); err == nil {
		t.Error("expected error for missing catalog")
	}
}

func TestRoutes_Pages(t *testing.T) {
	routes := newTestServer(t).Routes()

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/about", http.StatusOK},
		{"/projects", http.StatusOK},
		{"/projects/3", http.StatusOK},
		{"/projects/404", http.StatusNotFound},
		{"/blog", http.StatusOK},
		{"/blog/mcp-design-patterns", http.StatusOK},
		{"/static/css/site.css", http.StatusOK},
		{"/static/img/blog-1.svg", http.StatusOK},
		{"/static/chroma.css", http.StatusOK},
		{"/static/missing.css", http.StatusNotFound},
		{"/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
			}
		})
	}
}

func TestRoutes_BlogRendersCSRFToken(t *testing.T) {
	routes := newTestServer(t).Routes()

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest("GET", "/blog", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `name="gorilla.csrf.Token"`) {
		t.Error("newsletter form missing csrf field")
	}
}

func TestRoutes_NewsletterRequiresCSRF(t *testing.T) {
	routes := newTestServer(t).Routes()

	form := url.Values{"email": {"reader@example.com"}}
	req := httptest.NewRequest("POST", "/newsletter", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
