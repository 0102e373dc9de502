package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/hero-api/internal/api"
	apiMiddleware "github.com/phrazzld/hero-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func setupRouter(heroHandler *api.HeroHandler, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(apiMiddleware.CORS)
	r.Use(apiMiddleware.Trace)

	r.Route("/api", func(r chi.Router) {
		heroHandler.RegisterRoutes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
