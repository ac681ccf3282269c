package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerNotes) }

// Notes have no copy route.
func registerNotes(r chi.Router, d deps.Deps) {
	n := d.Toolkit.Notes
	r.Get("/api/notes", handlers.List(d, n.List))
	r.Post("/api/notes", handlers.Create(d, n.Create))
	r.Get("/api/notes/{id}", handlers.Get(d, n.Get))
	r.Put("/api/notes/{id}", handlers.Update(d, n.Update))
	r.Delete("/api/notes/{id}", handlers.Delete(d, n.Delete))
}
