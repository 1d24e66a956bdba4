package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-yellow-bee/mcp-showcase/internal/catalog"
	"github.com/good-yellow-bee/mcp-showcase/internal/models"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                    { return s.name }
func (s stubChecker) Check(ctx context.Context) error { return s.err }

func decode(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthAndLive(t *testing.T) {
	h := NewHandler("test")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.NotEmpty(t, resp.Uptime)

	rec = httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, "live", decode(t, rec).Status)
}

func TestReady(t *testing.T) {
	h := NewHandler("test")
	h.RegisterChecker(stubChecker{name: "a"})

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["a"].Status)

	h.RegisterChecker(stubChecker{name: "b", err: errors.New("down")})
	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp = decode(t, rec)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["a"].Status)
	assert.Equal(t, "failed", resp.Checks["b"].Status)
	assert.Equal(t, "down", resp.Checks["b"].Error)
}

func TestCatalogChecker(t *testing.T) {
	assert.Error(t, NewCatalogChecker(nil).Check(context.Background()))

	empty, err := catalog.New(nil)
	require.NoError(t, err)
	assert.EqualError(t, NewCatalogChecker(catalog.NewHolder(empty)).Check(context.Background()), "catalog is empty")

	one, err := catalog.New([]models.Project{{ID: "1", Title: "One", Level: models.LevelBasic}})
	require.NoError(t, err)
	assert.NoError(t, NewCatalogChecker(catalog.NewHolder(one)).Check(context.Background()))
}

func TestSQLiteChecker_NilDB(t *testing.T) {
	assert.Error(t, NewSQLiteChecker(nil).Check(context.Background()))
	assert.Equal(t, "sqlite", NewSQLiteChecker(nil).Name())
}
