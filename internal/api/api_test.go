package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/mcp-showcase/internal/blog"
	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/logging"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
	"github.com/good-yellow-bee/mcp-showcase/internal/newsletter"
	"github.com/good-yellow-bee/mcp-showcase/internal/storage"
)

// testServer creates a server over the embedded catalog and blog, with an
// in-memory subscriber database.
func testServer(t *testing.T, cfg *Config) *Server {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)
	posts, err := blog.Default()
	require.NoError(t, err)

	store := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, store.Open())
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	if cfg == nil {
		cfg = &Config{RateLimitPerMinute: 100}
	}
	srv, err := New(cfg, Deps{
		Catalog:    catalog.NewHolder(cat),
		Blog:       posts,
		Newsletter: newsletter.NewService(store.Subscribers(), logging.Discard()),
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(srv.limiter.Close)
	return srv
}

func do(t *testing.T, srv *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the data member of the response envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var env Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	return *env.Error
}

type projectList struct {
	Items []models.Project `json:"items"`
	Total int              `json:"total"`
}

func projectIDs(list projectList) []string {
	ids := make([]string, 0, len(list.Items))
	for _, p := range list.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(nil, Deps{})
	assert.Error(t, err)
	_, err = New(&Config{}, Deps{})
	assert.Error(t, err)
}

func TestListProjects(t *testing.T) {
	srv := testServer(t, nil)

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"all", "/api/v1/projects", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}},
		{"level", "/api/v1/projects?level=advanced", []string{"3", "6", "7", "12"}},
		{"level and tag", "/api/v1/projects?level=intermediate&tag=Python", []string{"4", "9"}},
		{"search", "/api/v1/projects?q=SERVER", nil},
		{"no match", "/api/v1/projects?q=zzzz-nothing", []string{}},
		{"where", "/api/v1/projects?where=" + url.QueryEscape(`level == "advanced" and year >= 2000`), []string{"3", "6", "7", "12"}},
		{"where and level", "/api/v1/projects?level=intermediate&where=" + url.QueryEscape(`"Python" in tags`), []string{"4", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var list projectList
			decodeData(t, rec, &list)
			assert.Equal(t, len(list.Items), list.Total)
			if tt.want != nil {
				assert.Equal(t, tt.want, projectIDs(list))
			} else {
				assert.Contains(t, projectIDs(list), "1")
			}
		})
	}
}

func TestListProjects_InvalidWhere(t *testing.T) {
	srv := testServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/v1/projects?where="+url.QueryEscape(`secret == "x"`), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationFailed, decodeError(t, rec).Code)
}

func TestListProjects_InvalidLevel(t *testing.T) {
	srv := testServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/v1/projects?level=expert", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationFailed, decodeError(t, rec).Code)
}

func TestGetProject(t *testing.T) {
	srv := testServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/projects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]any
	decodeData(t, rec, &raw)
	assert.Equal(t, "1", raw["id"])
	assert.Equal(t, "basic", raw["level"])
	assert.Contains(t, raw, "fullDescription")
	assert.Contains(t, raw, "codeSnippet")

	rec = do(t, srv, http.MethodGet, "/api/v1/projects/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}

func TestDownloadProject(t *testing.T) {
	srv := testServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/v1/projects/1/download", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(rec.Header().Get("Content-Disposition"), `"`), ".json"))

	var p models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "1", p.ID)
}

func TestRelatedProjects(t *testing.T) {
	srv := testServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/projects/3/related?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list projectList
	decodeData(t, rec, &list)
	assert.LessOrEqual(t, list.Total, 2)
	assert.NotContains(t, projectIDs(list), "3")

	rec = do(t, srv, http.MethodGet, "/api/v1/projects/3/related?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLevelsTagsStats(t *testing.T) {
	srv := testServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/levels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var levels []LevelResponse
	decodeData(t, rec, &levels)
	require.Len(t, levels, 3)
	assert.Equal(t, "basic", levels[0].Level)
	assert.Equal(t, "Basic", levels[0].Label)
	assert.Equal(t, 2, levels[0].Count)
	assert.Equal(t, 6, levels[1].Count)
	assert.Equal(t, 4, levels[2].Count)

	rec = do(t, srv, http.MethodGet, "/api/v1/tags", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tags []string
	decodeData(t, rec, &tags)
	assert.IsNonDecreasing(t, tags)
	assert.Contains(t, tags, "Python")

	rec = do(t, srv, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats catalog.Stats
	decodeData(t, rec, &stats)
	assert.Equal(t, 12, stats.Projects)
	assert.Equal(t, 3, stats.Levels)
}

func TestPosts(t *testing.T) {
	srv := testServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/v1/posts?category=Security", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []PostResponse `json:"items"`
		Total int            `json:"total"`
	}
	decodeData(t, rec, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "mcp-security-best-practices", list.Items[0].Slug)
	assert.Empty(t, list.Items[0].HTML)

	rec = do(t, srv, http.MethodGet, "/api/v1/posts/mcp-security-best-practices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var post PostResponse
	decodeData(t, rec, &post)
	assert.Equal(t, "2024-01-22", post.PublishDate)
	assert.Contains(t, post.HTML, "<h1")

	rec = do(t, srv, http.MethodGet, "/api/v1/posts/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribe(t *testing.T) {
	srv := testServer(t, nil)

	rec := do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"email":"Fan@Example.com"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var sub SubscriberResponse
	decodeData(t, rec, &sub)
	assert.Equal(t, "fan@example.com", sub.Email)

	rec = do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"email":"fan@example.com"}`))
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ErrCodeConflict, decodeError(t, rec).Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"email":"nope"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationFailed, decodeError(t, rec).Code)

	rec = do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"mail":1}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeBadRequest, decodeError(t, rec).Code)
}

func TestSubscribe_RateLimited(t *testing.T) {
	srv := testServer(t, &Config{RateLimitPerMinute: 1})

	rec := do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"email":"a@example.com"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, srv, http.MethodPost, "/api/v1/newsletter", []byte(`{"email":"b@example.com"}`))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t, nil)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		rec := do(t, srv, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCORS(t *testing.T) {
	srv := testServer(t, &Config{RateLimitPerMinute: 100, CORSOrigins: []string{"https://example.org"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownAPIRoute(t *testing.T) {
	srv := testServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/v1/nothing-here", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, rec).Code)
}
