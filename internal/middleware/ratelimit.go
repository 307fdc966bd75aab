package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/templui/rincon/internal/metrics"
)

// RateLimiter limits requests per client IP with a token bucket per IP.
// Each bucket holds limit tokens and refills completely over window.
type RateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*client
	limit      rate.Limit
	burst      int
	window     time.Duration
	now        func() time.Time
	stop       chan struct{}
	once       sync.Once
	trustProxy bool
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}

	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(float64(limit) / window.Seconds()),
		burst:   limit,
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	// Start cleanup goroutine to prevent memory leak
	go rl.cleanupLoop()

	return rl
}

// Allow reports whether a request from ip may proceed. When it may not, the
// second result is how long until the next token is available.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now

	if c.limiter.AllowN(now, 1) {
		return true, 0
	}

	reservation := c.limiter.ReserveN(now, 1)
	wait := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return false, wait
}

// TrustProxyHeaders makes Limit key clients on the address reported by a
// reverse proxy instead of the connection's remote address.
func (rl *RateLimiter) TrustProxyHeaders(trust bool) *RateLimiter {
	rl.trustProxy = trust
	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanupLoop periodically removes idle entries
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes IPs idle for longer than the window. An idle bucket has
// refilled completely, so dropping it changes nothing for the client.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.window)
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// Limit wraps an auth endpoint. Rejected requests get a 429 with Retry-After
// and are counted as rate_limited auth events.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := getClientIP(r, rl.trustProxy)

		ok, wait := rl.Allow(ip)
		if !ok {
			slog.Warn("rate limit exceeded",
				"ip", ip,
				"path", r.URL.Path,
			)
			metrics.RecordAuth(path.Base(r.URL.Path), metrics.OutcomeRateLimited)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeJSONError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}

		next(w, r)
	}
}

// RateLimitAuth creates middleware for auth endpoints
// Default limits: 5 requests per 15 minutes per IP
func RateLimitAuth(limit int, window time.Duration, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	return NewRateLimiter(limit, window).TrustProxyHeaders(trustProxy).Limit
}

// getClientIP returns the connection's remote host. Proxy headers are only
// read when trustProxy is set; the last X-Forwarded-For entry is the one
// appended by the proxy itself, so earlier client-supplied entries are ignored.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			entries := strings.Split(xff, ",")
			if last := strings.TrimSpace(entries[len(entries)-1]); last != "" {
				return last
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
