// Package middleware provides middleware specific to the web site.
package middleware

import (
	"context"
	"net/http"

	"github.com/good-yellow-bee/mcp-showcase/internal/web/flash"
)

type contextKey string

const flashContextKey contextKey = "flash"

// LoadFlash moves a pending flash message from the store into the request
// context and clears the cookie, so the message renders exactly once.
func LoadFlash(store *flash.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			msg, ok := store.Take(w, r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), flashContextKey, &msg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetFlash returns the flash message loaded for this request, if any.
func GetFlash(r *http.Request) *flash.Message {
	if msg, ok := r.Context().Value(flashContextKey).(*flash.Message); ok {
		return msg
	}
	return nil
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// VaryHTMX marks responses as depending on the HX-Request header so caches
// keep fragments and full pages apart.
func VaryHTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r)
	})
}
