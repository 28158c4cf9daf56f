package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

// SessionCookie is the name of the cookie holding the session token.
const SessionCookie = "auth-token"

type contextKey string

const sessionUserKey contextKey = "sessionUser"

// publicPrefixes are reachable without a session.
var publicPrefixes = []string{
	"/login",
	"/api/auth/login",
	"/health",
	"/metrics",
	"/static/",
	"/favicon.ico",
}

// TokenVerifier decodes a session token.
type TokenVerifier interface {
	Verify(token string) (model.SessionUser, error)
}

// SessionGate requires a valid session cookie on every path outside
// publicPrefixes. API callers get a 401 JSON body; browsers are redirected
// to the login page.
func SessionGate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := sessionFromRequest(r, verifier)
			if !ok {
				if strings.HasPrefix(r.URL.Path, "/api/") {
					writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionUserFromContext returns the user admitted by SessionGate.
func SessionUserFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(sessionUserKey).(model.SessionUser)
	return user, ok
}

func sessionFromRequest(r *http.Request, verifier TokenVerifier) (model.SessionUser, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return model.SessionUser{}, false
	}
	user, err := verifier.Verify(cookie.Value)
	if err != nil || !user.IsAuthenticated {
		return model.SessionUser{}, false
	}
	return user, true
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
