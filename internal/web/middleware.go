// Package web - Request-scoped logging middleware
//
// EDUCATIONAL NOTES:
// ------------------
// Middleware in Go HTTP servers wraps handlers to add cross-cutting concerns.
// Context-based dependency injection is a common pattern:
//
// 1. Outer middleware injects dependencies into request context
// 2. Handlers retrieve dependencies from context when needed
//
// Here the dependency is a *slog.Logger already tagged with the chi
// request id, so every line a handler logs can be matched to the access
// log entry for the same request.

package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/cabewaldrop/sqlparse/internal/logging"
)

// contextKey is a custom type for context keys to avoid collisions.
// Using a custom type prevents other packages from accidentally
// overwriting our context values with the same string key.
type contextKey string

// loggerKey is the context key for storing the request logger.
const loggerKey contextKey = "logger"

// WithLogger returns middleware that injects a request logger into the
// request context. Handlers can retrieve it using GetLogger.
//
// The logger carries a request_id attribute when middleware.RequestID ran
// earlier in the chain.
//
// Usage:
//
//	router.Use(middleware.RequestID)
//	router.Use(WithLogger(logger))
//	router.Get("/parse", func(w http.ResponseWriter, r *http.Request) {
//	    GetLogger(r).Info("parsing")
//	})
func WithLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logging.OrDiscard(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger
			if id := middleware.GetReqID(r.Context()); id != "" {
				reqLogger = logger.With("request_id", id)
			}
			ctx := context.WithValue(r.Context(), loggerKey, reqLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLogger retrieves the request logger from the request context.
// It never returns nil: without WithLogger in the chain the returned
// logger discards everything.
func GetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerKey).(*slog.Logger)
	if !ok {
		return logging.Discard()
	}
	return logger
}
