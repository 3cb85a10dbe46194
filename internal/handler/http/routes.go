package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/user/{username}", h.getUser)
			r.Post("/signup", h.signup)
			r.Post("/signin", h.signin)
			r.Delete("/deleteuser", h.deleteUser)
		})

		r.Route("/task", func(r chi.Router) {
			r.Get("/{id}", h.getTask)
			r.Post("/", h.createTask)
			r.Patch("/{id}", h.updateTask)
			r.Delete("/{id}", h.deleteTask)
		})
	})

	return router
}
