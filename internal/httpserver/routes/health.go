package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/handlers"
)

func init() {
	Register(registerLiveness)
	Register(registerReadiness, clientFilter)
	Register(registerInfra, clientFilter, hostFilter)
}

func registerLiveness(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}

func registerReadiness(r chi.Router, d deps.Deps) {
	r.Get("/readyz", handlers.Readyz(d))
}

func registerInfra(r chi.Router, d deps.Deps) {
	r.Get("/infra", handlers.Infra(d))
}
