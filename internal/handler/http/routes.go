package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.listTasks)
			r.Post("/", h.createTask)
			r.Put("/{id}", h.updateTask)
			r.Delete("/{id}", h.deleteTask)
			r.Post("/{id}/complete", h.completeTask)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", h.getPreferences)
			r.Put("/", h.updatePreferences)
		})

		r.Route("/backup", func(r chi.Router) {
			r.Post("/export", h.exportBackup)
			r.Post("/import", h.importBackup)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/offer", h.startOffer)
			r.Post("/join", h.joinOffer)
			r.Post("/complete", h.completeOffer)
			r.Get("/status", h.syncStatus)
			r.Post("/cancel", h.cancelSync)
		})
	})

	return router
}
