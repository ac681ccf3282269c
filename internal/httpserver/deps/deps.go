package deps

import (
	"time"

	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedHosts    []string         // Host headers allowed to access the server
	AllowedCIDRS    []string         // IPs allowed to access the API and readyz/infra endpoints
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins     []string         // browser origins allowed to call the API (empty = same-origin only)
	RateLimitBurst  int              // requests per client IP in a burst
	RateLimitPerMin int              // tokens refilled per client IP per minute
	Store           kv.Store         // durable store behind the panels
	Toolkit         *toolkit.Toolkit // the four panels
	BackupFile      string           // periodic backup target (empty = disabled)
	BackupTrigger   chan struct{}    // Channel to trigger a manual backup (nil if backup disabled)
}

// Now returns d.TimeNow() or time.Now() when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
