// Package session identifies a browser across requests with a cookie.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const CookieName = "tictactoe_session"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the session id put there by Middleware, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func NewID() string {
	return uuid.NewString()
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Middleware makes sure every request carries a session id, issuing a cookie when it is missing.
// With a ttl the cookie is re-issued on every request so it expires together with the stored game.
func Middleware(logger *slog.Logger, ttl time.Duration) func(http.Handler) http.Handler {
	log := logger.With("component", "session")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string

			cookie, err := r.Cookie(CookieName)
			switch {
			case err != nil || !validID(cookie.Value):
				id = NewID()
				log.Debug("session cookie not found, new one created", "session", id, "remote", r.RemoteAddr)
			default:
				id = cookie.Value
			}

			if id != cookieValue(cookie) || ttl > 0 {
				http.SetCookie(w, newCookie(id, ttl))
			}

			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

func cookieValue(cookie *http.Cookie) string {
	if cookie == nil {
		return ""
	}

	return cookie.Value
}

func newCookie(id string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}

	return cookie
}
