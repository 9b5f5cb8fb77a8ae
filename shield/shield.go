// CLAUDE:SUMMARY Reusable HTTP middleware: security headers, body limits, tracing, rate limiting, default API stack.
// Package shield provides reusable HTTP middleware for the quizforge
// service: security headers, request body limits, request tracing, per-IP
// rate limiting, and HEAD method handling.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
//	r.Use(shield.TraceID)
//	r.Use(shield.NewRateLimiter(db).Middleware)
//
// Or apply the default API stack in one call:
//
//	for _, mw := range shield.DefaultAPIStack(db) {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// GetLogger retrieves the per-request logger from the context.
// Returns slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// DefaultAPIStack returns the standard middleware stack for the quiz API,
// ordered HeadToGet, SecurityHeaders, TraceID, RateLimiter. Body limits are
// applied per-route since the upload endpoint needs a much larger cap than
// the JSON endpoints. The returned RateLimiter handle lets the caller start
// its background reloader.
func DefaultAPIStack(db *sql.DB) ([]func(http.Handler) http.Handler, *RateLimiter) {
	rl := NewRateLimiter(db, "/healthz")
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		TraceID,
		rl.Middleware,
	}, rl
}
