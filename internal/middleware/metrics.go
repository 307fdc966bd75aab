package middleware

import (
	"net/http"
	"time"

	"github.com/templui/rincon/internal/metrics"
)

// Prometheus records request duration and count for each request.
// Place it outside Recoverer so recovered panics are counted as 500s.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rw := wrapResponseWriter(w)
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		metrics.RecordRequest(r.Method, path, rw.statusCode, time.Since(start).Seconds())
	})
}
