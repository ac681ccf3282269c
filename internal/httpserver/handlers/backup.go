package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/logger"
)

// Backup triggers an immediate backup.
func Backup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.BackupTrigger <- struct{}{}:
			d.Logger.Info("manual backup triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(d, w, http.StatusAccepted, map[string]string{"status": "backup triggered"})
		default:
			d.Logger.Warn("backup already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(d, w, http.StatusTooManyRequests, errorResponse{Error: "backup already in progress, please wait"})
		}
	}
}
