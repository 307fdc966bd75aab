package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// nonceKey is the context key for the generated nonce. It is kept apart from
// templ's internal key so SecurityHeaders can read it back for the CSP header.
type nonceKey struct{}

// Nonce generates a random nonce per request and stores it in the context
// for templates (templ.GetNonce) and for SecurityHeaders. Only scripts
// carrying the nonce are allowed to execute.
func Nonce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			// Continue without nonce: inline scripts are blocked by CSP
			slog.Error("failed to generate csp nonce", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := templ.WithNonce(r.Context(), nonce)
		ctx = context.WithValue(ctx, nonceKey{}, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetNonce retrieves the nonce from context for use in middleware
// (templates should use templ.GetNonce() instead)
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// generateNonce returns 16 random bytes, base64 encoded (24 chars)
func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
