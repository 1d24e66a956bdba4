package handlers

import (
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
	webmw "github.com/good-yellow-bee/mcp-showcase/internal/web/middleware"
)

type testEnv struct {
	router http.Handler
	flash  *flash.Store
}

func newTestEnv(t *testing.T, withNewsletter bool) *testEnv {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return newCatalogEnv(t, cat, withNewsletter)
}

func newCatalogEnv(t *testing.T, cat *catalog.Catalog, withNewsletter bool) *testEnv {
	t.Helper()

	posts, err := blog.Default()
	if err != nil {
		t.Fatalf("blog.Default() error = %v", err)
	}

	store := flash.NewStore(time.Minute)
	t.Cleanup(store.Close)

	deps := Deps{
		Catalog: catalog.NewHolder(cat),
		Blog:    posts,
		Flash:   store,
		BaseURL: "https://showcase.example.com/",
		Version: "test",
		Logger:  logging.Discard(),
	}
	if withNewsletter {
		db := storage.NewSQLiteStorage(":memory:")
		if err := db.Open(); err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		t.Cleanup(func() { db.Close() })
		if err := db.Migrate(); err != nil {
			t.Fatalf("Migrate() error = %v", err)
		}
		deps.Newsletter = newsletter.NewService(db.Subscribers(), logging.Discard())
	}

	h := NewHandler(deps)
	r := chi.NewRouter()
	r.Use(webmw.LoadFlash(store))
	r.Get("/", h.ShowHome)
	r.Get("/about", h.ShowAbout)
	r.Get("/projects", h.ShowProjects)
	r.Get("/projects/{id}", h.ShowProject)
	r.Get("/projects/{id}/download.json", h.DownloadProject)
	r.Get("/projects/{id}/snippet", h.DownloadSnippet)
	r.Get("/blog", h.ShowBlog)
	r.Get("/blog/{slug}", h.ShowPost)
	r.Post("/newsletter", h.HandleSubscribe)
	r.Get("/static/chroma.css", h.ChromaCSS)
	r.NotFound(h.NotFound)

	return &testEnv{router: r, flash: store}
}

func (e *testEnv) get(target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) subscribe(email string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}}
	req := httptest.NewRequest("POST", "/newsletter", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName {
			return c
		}
	}
	return nil
}

func TestShowHome(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!doctype html>") {
		t.Error("home page should render the full layout")
	}
	if !strings.Contains(body, "Basic MCP Server Setup") {
		t.Error("home page missing featured project")
	}
}

func TestShowAbout(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/about")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "About") {
		t.Error("about page missing heading")
	}
}

func TestShowProjects_FullPage(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!doctype html>") {
		t.Error("expected full page")
	}
	if !strings.Contains(body, "12 Projects Found") {
		t.Error("unfiltered listing should show every project")
	}
}

func TestShowProjects_HTMXFragment(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects?level=advanced", "HX-Request", "true")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!doctype html>") {
		t.Error("htmx request should receive only the results fragment")
	}
	if !strings.Contains(body, `id="results"`) {
		t.Error("fragment missing results container")
	}
	if !strings.Contains(body, "4 Projects Found") {
		t.Errorf("advanced filter should find 4 projects, body: %s", body)
	}
}

func TestShowProjects_NoResults(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects?search=no-such-project-anywhere")

	if !strings.Contains(rec.Body.String(), "No projects found") {
		t.Error("expected empty state")
	}
}

func TestShowProject(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects/1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Basic MCP Server Setup") {
		t.Error("detail page missing title")
	}
	if !strings.Contains(body, "https://showcase.example.com/projects/1") {
		t.Error("share link should use the configured base URL")
	}
	if !strings.Contains(body, `class="chroma`) {
		t.Error("code snippet should be highlighted")
	}
}

func TestShowProject_NotFound(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects/999")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "Project Not Found") {
		t.Error("missing not found message")
	}
}

func TestDownloadProject(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects/1/download.json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Basic_MCP_Server_Setup.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), `"id": "1"`) {
		t.Error("download should contain the project record")
	}
}

func TestDownloadSnippet(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/projects/1/snippet")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Basic MCP Server Setup.py") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "import asyncio") {
		t.Error("snippet body missing code")
	}
}

func TestShowBlog(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/blog")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Getting Started with Model Context Protocol") {
		t.Error("blog index missing featured post")
	}
	if !strings.Contains(body, `id="newsletter"`) {
		t.Error("blog index missing newsletter form")
	}
}

func TestShowBlog_Category(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/blog?category=Security")

	body := rec.Body.String()
	if strings.Contains(body, "Getting Started with Model Context Protocol") {
		t.Error("category filter should exclude other posts and hide the featured post")
	}
	if !strings.Contains(body, "/blog/mcp-security-best-practices") {
		t.Error("category filter should include matching posts")
	}
}

func TestShowPost(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.get("/blog/getting-started-with-mcp")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "<table>") {
		t.Error("markdown tables should render")
	}

	rec = env.get("/blog/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleSubscribe(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.subscribe("reader@example.com")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog#newsletter" {
		t.Errorf("Location = %q", loc)
	}
	cookie := flashCookie(rec)
	if cookie == nil {
		t.Fatal("expected flash cookie")
	}

	req := httptest.NewRequest("GET", "/blog", nil)
	req.AddCookie(cookie)
	page := httptest.NewRecorder()
	env.router.ServeHTTP(page, req)
	if !strings.Contains(page.Body.String(), "Thanks for subscribing") {
		t.Error("blog page should show the success flash")
	}
}

func TestHandleSubscribe_Outcomes(t *testing.T) {
	env := newTestEnv(t, true)
	env.subscribe("reader@example.com")

	tests := []struct {
		name  string
		email string
		kind  flash.Kind
	}{
		{"duplicate", "Reader@Example.com", flash.KindInfo},
		{"invalid", "not-an-email", flash.KindError},
		{"empty", "", flash.KindError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookie := flashCookie(env.subscribe(tt.email))
			if cookie == nil {
				t.Fatal("expected flash cookie")
			}
			msg, ok := env.flash.Pop(cookie.Value)
			if !ok {
				t.Fatal("flash message not stored")
			}
			if msg.Kind != tt.kind {
				t.Errorf("kind = %q, want %q (%s)", msg.Kind, tt.kind, msg.Text)
			}
		})
	}
}

func TestHandleSubscribe_Unavailable(t *testing.T) {
	env := newTestEnv(t, false)

	cookie := flashCookie(env.subscribe("reader@example.com"))
	if cookie == nil {
		t.Fatal("expected flash cookie")
	}
	msg, _ := env.flash.Pop(cookie.Value)
	if msg.Kind != flash.KindError {
		t.Errorf("kind = %q, want error", msg.Kind)
	}
}

func TestChromaCSS(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/static/chroma.css")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), ".chroma") {
		t.Error("stylesheet missing chroma classes")
	}
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.get("/nowhere")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestShowProject_UnsafeURLs(t *testing.T) {
	cat, err := catalog.New([]models.Project{{
		ID:          "unsafe",
		Title:       "Unsafe Links",
		Description: "Carries script URLs",
		Level:       models.LevelBasic,
		Language:    "Go",
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		GitHubURL:   "javascript:alert(1)",
		DownloadURL: "JavaScript:alert(2)",
	}})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	env := newCatalogEnv(t, cat, false)

	for _, target := range []string{"/projects/unsafe", "/projects"} {
		rec := env.get(target)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", target, rec.Code, http.StatusOK)
		}
		body := strings.ToLower(rec.Body.String())
		if strings.Contains(body, `href="javascript:`) {
			t.Errorf("GET %s rendered a javascript: href", target)
		}
		if !strings.Contains(body, "about:invalid#templfailedsanitizationurl") {
			t.Errorf("GET %s did not replace the unsafe URL", target)
		}
	}
}

func TestDownload_NonASCIITitle(t *testing.T) {
	cat, err := catalog.New([]models.Project{{
		ID:          "cafe",
		Title:       "Café\u00a0Tools",
		Description: "Accented title",
		Level:       models.LevelBasic,
		Language:    "python",
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		CodeSnippet: "print('ok')",
	}})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	env := newCatalogEnv(t, cat, false)

	tests := []struct {
		target string
		want   string
	}{
		{"/projects/cafe/download.json", "Café_Tools.json"},
		{"/projects/cafe/snippet", "Café\u00a0Tools.py"},
	}
	for _, tt := range tests {
		rec := env.get(tt.target)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d", tt.target, rec.Code)
		}
		cd := rec.Header().Get("Content-Disposition")
		_, params, err := mime.ParseMediaType(cd)
		if err != nil {
			t.Fatalf("GET %s Content-Disposition %q: %v", tt.target, cd, err)
		}
		if params["filename"] != tt.want {
			t.Errorf("GET %s filename = %q, want %q", tt.target, params["filename"], tt.want)
		}
	}
}
