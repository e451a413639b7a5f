// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. The catch-all render
// route is registered last so the API and health prefixes win.
func NewRouter(
	contentHandler *handlers.ContentHandler,
	renderHandler *handlers.RenderHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/content", contentHandler.ListContent)
		r.Post("/content/refresh", contentHandler.RefreshIndex)
		r.Get("/content/{key}", contentHandler.GetContent)
		r.Get("/content/{key}/children", contentHandler.GetChildren)

		r.Post("/preview", renderHandler.Preview)
	})

	// Everything else renders published content by route.
	r.Get("/*", renderHandler.Render)

	return r
}
