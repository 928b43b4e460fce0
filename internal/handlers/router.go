package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mwarren/todoapp/internal/logger"
	"github.com/mwarren/todoapp/internal/middleware"
)

// NewRouter assembles the full HTTP surface. Everything under /api/todos
// requires a valid bearer token.
func NewRouter(auth *AuthHandler, todos *TodoHandler, health *HealthHandler, authMW *middleware.AuthMiddleware, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", health.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(authMW.RequireAuth)
			r.Get("/", todos.List)
			r.Post("/", todos.Create)
			r.Get("/{id}", todos.Get)
			r.Put("/{id}", todos.Update)
			r.Delete("/{id}", todos.Delete)
		})
	})

	return r
}
