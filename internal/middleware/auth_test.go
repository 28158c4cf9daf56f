package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

type stubVerifier map[string]model.SessionUser

func (s stubVerifier) Verify(token string) (model.SessionUser, error) {
	user, ok := s[token]
	if !ok {
		return model.SessionUser{}, errors.New("invalid")
	}
	return user, nil
}

func TestSessionGate(t *testing.T) {
	verifier := stubVerifier{
		"good": model.AdminUser,
		"anon": {ID: "admin", Name: "Admin", IsAuthenticated: false},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	gate := SessionGate(verifier)(next)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{name: "login page is public", path: "/login", wantStatus: http.StatusNoContent},
		{name: "login api is public", path: "/api/auth/login", wantStatus: http.StatusNoContent},
		{name: "health is public", path: "/health", wantStatus: http.StatusNoContent},
		{name: "api without cookie", path: "/api/wishlists", wantStatus: http.StatusUnauthorized},
		{name: "api with bad cookie", path: "/api/items", token: "forged", wantStatus: http.StatusUnauthorized},
		{name: "api with unauthenticated claim", path: "/api/items", token: "anon", wantStatus: http.StatusUnauthorized},
		{name: "page without cookie", path: "/", wantStatus: http.StatusFound, wantLocation: "/login"},
		{name: "api with good cookie", path: "/api/wishlists", token: "good", wantStatus: http.StatusNoContent},
		{name: "page with good cookie", path: "/", token: "good", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.token})
			}
			rec := httptest.NewRecorder()

			gate.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestSessionGateAttachesUser(t *testing.T) {
	var seen model.SessionUser
	var ok bool
	gate := SessionGate(stubVerifier{"good": model.AdminUser})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, ok = SessionUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	gate.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ok)
	assert.Equal(t, model.AdminUser, seen)
}
