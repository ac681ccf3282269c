package mw

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/devkit/internal/utils"
)

// RateLimitConfig sets the per-client token bucket for write requests.
type RateLimitConfig struct {
	Burst      int      // writes a client may send at once
	PerMinute  int      // tokens refilled per client per minute
	BulkPaths  []string // paths drawing from a separate bucket per client
	TrustProxy bool     // resolve the client from proxy headers

	IdleTTL time.Duration    // idle buckets are dropped after this long (default 15m)
	Now     func() time.Time // defaults to time.Now
}

type bucket struct {
	tokens float64
	last   time.Time
}

type limiter struct {
	mu        sync.Mutex
	burst     float64
	perSec    float64
	ttl       time.Duration
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	burst := max(cfg.Burst, 1)
	perMin := max(cfg.PerMinute, 1)
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &limiter{
		burst:   float64(burst),
		perSec:  float64(perMin) / 60,
		ttl:     ttl,
		buckets: make(map[string]*bucket),
	}
}

// take spends one token of key's bucket. When none is left it reports
// how long until the next one.
func (l *limiter) take(key string, now time.Time) (ok bool, remaining int, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.Sub(b.last) > l.ttl {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.ttl)
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.perSec)
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	return false, 0, time.Duration((1 - b.tokens) / l.perSec * float64(time.Second))
}

func isWrite(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// RateLimit throttles writes per client address; reads pass untouched.
// Requests to BulkPaths (import, backup) use their own bucket so they
// cannot starve ordinary edits, and the other way round.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	limit := strconv.Itoa(int(l.burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := utils.ClientIP(r, cfg.TrustProxy)
			if slices.Contains(cfg.BulkPaths, r.URL.Path) {
				key += " bulk"
			}

			ok, remaining, wait := l.take(key, now())
			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(max(int(math.Ceil(wait.Seconds())), 1)))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
