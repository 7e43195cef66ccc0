package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// admin-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.adminAuth)
		r.Get("/api/config", h.getConfig)
		r.Put("/api/config", h.updateConfig)
	})

	return router
}
