package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/mw"
)

func init() { Register(registerAPI, clientFilter, hostFilter, writeLimit) }

// registerAPI mounts every panel and transfer route behind one
// middleware stack, so all of /api shares a single rate limiter.
func registerAPI(r chi.Router, d deps.Deps) {
	for _, reg := range apiRegistry {
		reg(r, d)
	}
}

func clientFilter(d deps.Deps) func(http.Handler) http.Handler {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}

func hostFilter(d deps.Deps) func(http.Handler) http.Handler {
	return mw.EnforceHost(d.AllowedHosts, d.Logger)
}

// Import and backup rewrite whole panels or files; they get their own
// bucket per client.
func writeLimit(d deps.Deps) func(http.Handler) http.Handler {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.RateLimitBurst,
		PerMinute:  d.RateLimitPerMin,
		BulkPaths:  []string{"/api/import", "/api/backup"},
		TrustProxy: d.TrustProxy,
	})
}
