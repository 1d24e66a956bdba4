package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// validRequestID limits client-supplied request IDs to something safe to log
// and echo back.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// loggedWriter records the status and body size of a response.
type loggedWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lw *loggedWriter) WriteHeader(status int) {
	lw.status = status
	lw.ResponseWriter.WriteHeader(status)
}

func (lw *loggedWriter) Write(b []byte) (int, error) {
	n, err := lw.ResponseWriter.Write(b)
	lw.size += n
	return n, err
}

func (lw *loggedWriter) Unwrap() http.ResponseWriter {
	return lw.ResponseWriter
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); validRequestID.MatchString(id) {
		return id
	}
	return uuid.New().String()[:8]
}

// RequestLogger tags every request with an ID, reusing a well-formed
// X-Request-ID from the client. Failed requests are always logged; the rest
// only when verbose is set. Static assets are never logged unless they fail.
func RequestLogger(logger *log.Logger, verbose bool) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := requestID(r)

			w.Header().Set("X-Request-ID", id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

			lw := &loggedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lw, r)

			surface := Surface(r.URL.Path)
			if lw.status < 400 && (!verbose || surface == "static") {
				return
			}
			fields := []any{
				"request_id", id,
				"surface", surface,
				"method", r.Method,
				"path", r.URL.Path,
				"status", lw.status,
				"bytes", lw.size,
				"duration", time.Since(start),
			}
			switch {
			case lw.status >= 500:
				logger.Error("request", fields...)
			case lw.status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}
