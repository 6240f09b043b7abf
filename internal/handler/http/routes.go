package http

import (
	"github.com/MKhiriev/go-secmsg-directory/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/health", h.health)
	router.Get("/metrics", metrics.Handler().ServeHTTP)

	// promhttp negotiates its own compression
	router.Group(func(api chi.Router) {
		api.Use(withGZip)
		api.Get("/api/version", h.getServerVersion)
		api.Get("/api/directory/stats", h.directoryStats)
	})

	router.MethodNotAllowed(notFoundOnWrongMethod(router))

	return router
}
