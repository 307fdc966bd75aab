package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/service"
)

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
	ClearSessionCookie(w http.ResponseWriter)
}

// Auth reads the session token from the Authorization header or the
// auth_token cookie and adds the user to the context if it is valid.
// Requests without a valid token continue anonymously.
func Auth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromHeader := bearerToken(r)
			if !fromHeader {
				cookie, err := r.Cookie(service.SessionCookieName)
				if err != nil || cookie.Value == "" {
					next.ServeHTTP(w, r)
					return
				}
				token = cookie.Value
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					slog.Error("failed to authenticate request", "error", err)
				}
				// Stale or forged cookie: drop it so the browser stops sending it
				if !fromHeader {
					auth.ClearSessionCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the user is authenticated. API requests get a 401
// with a Bearer challenge, pages are redirected to the login page.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeJSONError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// RequireGuest ensures the user is not authenticated
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
