package mw

import (
	"net"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/utils"
)

const forbiddenBody = `{"error":"forbidden"}` + "\n"

func forbid(w http.ResponseWriter, r *http.Request, log logger.Logger, reason string, fields ...logger.Field) {
	log.Warn("request rejected", append(fields,
		logger.String("reason", reason),
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path))...)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(forbiddenBody))
}

// AllowOnlyCIDRS admits only clients whose address is in allowed (IPs or
// CIDRs). An empty list admits everyone. Set trustProxy when the server
// sits behind a reverse proxy or tunnel that sets the forwarding headers.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	set := utils.ParseAddrSet(allowed)
	if len(set) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("client address filter enabled",
		logger.Int("networks", len(set)),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !set.Contains(ip) {
				forbid(w, r, log, "client address", logger.String("remote_ip", ip))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnforceHost admits only requests whose Host matches one of
// allowedHosts. Ports are ignored on both sides. "*.example.com" matches any subdomain but not
// example.com itself. An empty list admits everything.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, len(allowedHosts))
	for i, h := range allowedHosts {
		patterns[i] = hostOnly(h)
	}
	log.Debug("host filter enabled", logger.String("hosts", strings.Join(patterns, ",")))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := hostOnly(r.Host)
			for _, p := range patterns {
				if matchHost(host, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			forbid(w, r, log, "host", logger.String("host", r.Host))
		})
	}
}

func hostOnly(hostport string) string {
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		hostport = h
	}
	return strings.ToLower(strings.TrimSuffix(hostport, "."))
}

func matchHost(host, pattern string) bool {
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return host == pattern
}
