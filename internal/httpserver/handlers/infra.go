package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Records *int   `json:"records,omitempty"`
	Backend string `json:"backend,omitempty"`
	Target  string `json:"target,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the store and the state of every panel.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":  checkStore(r.Context(), d),
			"backup": backupStatus(d),
		}
		for _, st := range d.Toolkit.Stats(r.Context()) {
			status := componentStatus{OK: st.Err == nil}
			if st.Err != nil {
				status.Error = st.Err.Error()
			} else {
				count := st.Count
				status.Records = &count
			}
			components[st.Panel] = status
		}

		writeJSON(d, w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Store down = nothing can be read or written
	if store, exists := components["store"]; exists && !store.OK {
		return "critical"
	}

	// A corrupt panel is isolated, the others keep working
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}

	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.Store.Backend(),
			Error:   err.Error(),
		}
	}
	return componentStatus{OK: true, Backend: d.Store.Backend()}
}

func backupStatus(d deps.Deps) componentStatus {
	if d.BackupFile == "" {
		return componentStatus{OK: true, Target: "disabled"}
	}
	return componentStatus{OK: true, Target: d.BackupFile}
}
