package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/utils"
)

// SessionCookie holds the provider token for browser clients.
const SessionCookie = "session"

var errNoToken = errors.New("no token")

// TokenFrom extracts the provider token from the Authorization header or the
// session cookie.
func TokenFrom(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || token == "" {
			return "", errors.New("malformed Authorization header")
		}
		return token, nil
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", errNoToken
}

// Authenticate verifies the request's provider token.
func Authenticate(r *http.Request) (*models.Identity, error) {
	token, err := TokenFrom(r)
	if err != nil {
		return nil, err
	}
	identity, err := utils.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return identity, nil
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware attaches the caller's Session to the request context. Requests
// without a valid token proceed signed out. A session cookie that no longer
// validates is cleared and reported as a sign-out transition, so the expiry
// is announced once rather than on every later request.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := Authenticate(r)
		expired := false
		if err != nil && !errors.Is(err, errNoToken) {
			fmt.Printf("[Auth] %s %s: %v\n", r.Method, r.URL.Path, err)
			if r.Header.Get("Authorization") == "" {
				ClearSessionCookie(w, r.TLS != nil)
				g.Transition(r.Context(), nil)
				expired = true
			}
		}
		sess := g.Resolve(r.Context(), identity)
		sess.Expired = expired
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
