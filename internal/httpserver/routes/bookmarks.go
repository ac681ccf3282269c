package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	b := d.Toolkit.Bookmarks
	r.Get("/api/bookmarks", handlers.List(d, b.List))
	r.Post("/api/bookmarks", handlers.Create(d, b.Create))
	r.Get("/api/bookmarks/{id}", handlers.Get(d, b.Get))
	r.Put("/api/bookmarks/{id}", handlers.Update(d, b.Update))
	r.Delete("/api/bookmarks/{id}", handlers.Delete(d, b.Delete))
	r.Post("/api/bookmarks/{id}/copy", handlers.Copy(d, b.Copy))
}
