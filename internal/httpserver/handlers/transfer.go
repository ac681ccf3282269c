package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/transfer"
)

// Export streams a YAML snapshot of every panel. Corrupt panels are
// exported empty and listed in the X-Devkit-Unavailable header.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := transfer.Export(r.Context(), d.Toolkit, d.Now())
		if err != nil {
			writeError(d, w, r, err)
			return
		}

		if len(doc.Unavailable) > 0 {
			d.Logger.Warn("corrupt panels left out of export",
				logger.String("panels", strings.Join(doc.Unavailable, ",")))
			w.Header().Set("X-Devkit-Unavailable", strings.Join(doc.Unavailable, ","))
		}

		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", `attachment; filename="devkit.yaml"`)
		w.Header().Set("Cache-Control", "no-store")
		if err := transfer.Encode(w, doc); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

// Import adds the records of a YAML document sent as the request body.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := transfer.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(d, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		sum, err := transfer.Import(r.Context(), d.Toolkit, doc)
		if err != nil {
			writeError(d, w, r, err)
			return
		}

		d.Logger.Info("import completed",
			logger.Int("snippets", sum.Snippets.Imported),
			logger.Int("bookmarks", sum.Bookmarks.Imported),
			logger.Int("notes", sum.Notes.Imported),
			logger.Int("clips", sum.Clips.Imported))
		writeJSON(d, w, http.StatusOK, sum)
	}
}
