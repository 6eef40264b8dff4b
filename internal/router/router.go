// Package router sets up all HTTP routes and middleware chains for the
// blog admin API. It organizes routes into admin and public groups.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogpress/internal/handlers"
	"blogpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Admin API. Authentication is terminated upstream by the identity
	// proxy; these routes trust the forwarded request.
	r.Route("/admin", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.CategoriesList)
			r.Post("/", admin.CategoryCreate)
			r.Get("/options", admin.CategoryOptions)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
			r.Post("/{id}/toggle", admin.CategoryToggle)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", admin.TagsList)
			r.Post("/", admin.TagCreate)
			r.Get("/options", admin.TagOptions)
			r.Put("/{id}", admin.TagUpdate)
			r.Delete("/{id}", admin.TagDelete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.PostsList)
			r.Post("/", admin.PostCreate)
			r.Get("/{id}", admin.PostGet)
			r.Put("/{id}", admin.PostUpdate)
			r.Delete("/{id}", admin.PostDelete)
			r.Post("/{id}/publish", admin.PostPublish)
			r.Post("/{id}/archive", admin.PostArchive)
			r.Put("/{id}/tags", admin.PostSetTags)
			r.Post("/{id}/image", admin.PostUploadImage)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", admin.UsersList)
			r.Get("/{id}", admin.UserGet)
		})
	})

	// Public read side.
	r.Get("/posts", public.PostsList)
	r.Get("/posts/{id}", public.PostGet)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
