package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		verbose bool
		logged  bool
	}{
		{"success quiet", http.StatusOK, false, false},
		{"success verbose", http.StatusOK, true, true},
		{"not found", http.StatusNotFound, false, true},
		{"server error", http.StatusInternalServerError, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var seenID string
			handler := RequestLogger(log.New(&buf), tt.verbose)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = GetRequestID(r.Context())
				w.WriteHeader(tt.status)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/projects", nil))

			id := rec.Header().Get("X-Request-ID")
			if len(id) != 8 {
				t.Errorf("X-Request-ID = %q, want 8 chars", id)
			}
			if seenID != id {
				t.Errorf("context request id = %q, header = %q", seenID, id)
			}
			if got := strings.Contains(buf.String(), "/projects"); got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"client id kept", "abc-123.x_y", true},
		{"spaces rejected", "abc 123", false},
		{"too long rejected", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequestLogger(log.New(&bytes.Buffer{}), false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("X-Request-ID", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-ID")
			if tt.keep && got != tt.header {
				t.Errorf("X-Request-ID = %q, want %q", got, tt.header)
			}
			if !tt.keep && (got == tt.header || len(got) != 8) {
				t.Errorf("X-Request-ID = %q, want fresh 8-char id", got)
			}
		})
	}
}

func TestRequestLogger_StaticQuiet(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(log.New(&buf), true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/static/css/site.css", nil))
	if buf.Len() != 0 {
		t.Errorf("static asset logged: %q", buf.String())
	}
}
