package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

// Recoverer recovers from panics, logs the stack and returns a 500.
// API requests get a JSON body, pages a plain one.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := wrapResponseWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				"method", r.Method,
				"path", logPath(r.URL.Path),
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			if rw.written {
				return
			}
			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSONError(rw, http.StatusInternalServerError, "internal server error")
				return
			}
			http.Error(rw, "Internal Server Error", http.StatusInternalServerError)
		}()
		next.ServeHTTP(rw, r)
	})
}
