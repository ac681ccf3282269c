package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready once the store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(d, w, http.StatusServiceUnavailable, readyzResponse{
				Store: d.Store.Backend(),
				Error: err.Error(),
			})
			return
		}

		writeJSON(d, w, http.StatusOK, readyzResponse{
			Ready: true,
			Store: d.Store.Backend(),
		})
	}
}
