package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(d deps.Deps, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

// writeError maps toolkit errors to HTTP statuses. Anything unexpected
// is logged and reported as 500.
func writeError(d deps.Deps, w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, toolkit.ErrBlankField):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, toolkit.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, toolkit.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		d.Logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err))
		writeJSON(d, w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	writeJSON(d, w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
