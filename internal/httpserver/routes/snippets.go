package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerSnippets) }

func registerSnippets(r chi.Router, d deps.Deps) {
	s := d.Toolkit.Snippets
	r.Get("/api/snippets", handlers.List(d, s.List))
	r.Post("/api/snippets", handlers.Create(d, s.Create))
	r.Get("/api/snippets/{id}", handlers.Get(d, s.Get))
	r.Put("/api/snippets/{id}", handlers.Update(d, s.Update))
	r.Delete("/api/snippets/{id}", handlers.Delete(d, s.Delete))
	r.Post("/api/snippets/{id}/copy", handlers.Copy(d, s.Copy))
}
