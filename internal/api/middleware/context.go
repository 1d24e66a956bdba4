// Package middleware provides HTTP middleware shared by the site and the API.
package middleware

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID returns the request ID assigned by RequestLogger.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
