package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// SecurityHeaders sets common security response headers and a
// Content-Security-Policy that only allows scripts carrying the request
// nonce. imageHosts are extra origins allowed in img-src (the S3 endpoint
// serving product images). When hsts is true, adds Strict-Transport-Security.
// Must run after Nonce.
func SecurityHeaders(hsts bool, imageHosts ...string) func(http.Handler) http.Handler {
	imgSrc := "'self' data: https:"
	if len(imageHosts) > 0 {
		imgSrc += " " + strings.Join(imageHosts, " ")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scriptSrc := "'self'"
			if nonce := GetNonce(r.Context()); nonce != "" {
				scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
			}

			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", strings.Join([]string{
				"default-src 'self'",
				"script-src " + scriptSrc,
				"style-src 'self' 'unsafe-inline'",
				"img-src " + imgSrc,
				"connect-src 'self'",
				"frame-ancestors 'none'",
				"base-uri 'self'",
				"form-action 'self'",
			}, "; "))
			if hsts {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
