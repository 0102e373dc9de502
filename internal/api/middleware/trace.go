// Package middleware provides the HTTP middleware applied around the hero
// API handlers.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/hero-api/internal/api/shared"
	appLogger "github.com/phrazzld/hero-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and logs the incoming
// request. It should be applied early in the middleware chain so every
// subsequent handler sees the trace ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		ctx = appLogger.WithLogger(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
