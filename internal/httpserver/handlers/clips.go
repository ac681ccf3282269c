package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
)

type pasteResponse struct {
	Content string `json:"content"`
}

// Paste returns the clipboard text, or "" when there is nothing usable.
func Paste(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(d, w, http.StatusOK, pasteResponse{Content: d.Toolkit.Clips.Paste()})
	}
}

func ClearClips(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Toolkit.Clips.ClearAll(r.Context()); err != nil {
			writeError(d, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
