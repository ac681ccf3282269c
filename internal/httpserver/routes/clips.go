package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerClips) }

// Clips cannot be edited, so there is no PUT.
func registerClips(r chi.Router, d deps.Deps) {
	c := d.Toolkit.Clips
	r.Get("/api/clips", handlers.List(d, c.List))
	r.Post("/api/clips", handlers.Create(d, c.Create))
	r.Delete("/api/clips", handlers.ClearClips(d))
	r.Post("/api/clips/paste", handlers.Paste(d))
	r.Get("/api/clips/{id}", handlers.Get(d, c.Get))
	r.Delete("/api/clips/{id}", handlers.Delete(d, c.Delete))
	r.Post("/api/clips/{id}/copy", handlers.Copy(d, c.Copy))
}
