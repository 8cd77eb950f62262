package middleware

import (
	"context"
	"net/http"

	"github.com/fairwaylabs/clubfit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// usernameKey is the context key for storing the logged-in username.
const usernameKey contextKey = "username"

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "clubfit_session"

// Username extracts the logged-in username from the context.
// Returns empty string if not found.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// WithUsername returns a copy of ctx carrying the logged-in username.
// Exposed for handler tests.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// RequireSession returns middleware that validates the session cookie and
// adds the username to the request context before any handler logic runs.
// Requests without a valid session are handed to reject, which the web layer
// uses to flash a notice and redirect to the login page.
func RequireSession(sessions *auth.SessionManager, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				reject(w, r)
				return
			}

			claims, err := sessions.Validate(cookie.Value)
			if err != nil {
				reject(w, r)
				return
			}

			ctx := WithUsername(r.Context(), claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
