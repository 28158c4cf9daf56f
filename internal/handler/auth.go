package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/wishkeeper/wishkeeper-go/internal/middleware"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles login, session checks and logout.
type AuthHandler struct {
	service      *service.AuthService
	logger       *zap.Logger
	secureCookie bool
	sessionTTL   time.Duration
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger, secureCookie bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		service:      svc,
		logger:       logger,
		secureCookie: secureCookie,
		sessionTTL:   sessionTTL,
	}
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse("Password is required"))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid password"))
		default:
			h.logger.Error("login failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.sessionTTL.Seconds())))
	writeJSON(w, http.StatusOK, model.AuthResponse{Success: true, User: user})
}

// HandleVerify handles GET /api/auth/verify requests.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.SessionUserFromContext(r.Context()); ok {
		writeJSON(w, http.StatusOK, model.AuthResponse{Success: true, User: user})
		return
	}

	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse("No token provided"))
		return
	}

	user, err := h.service.Verify(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid token"))
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{Success: true, User: user})
}

// HandleLogout handles POST /api/auth/logout requests. The token itself stays
// valid until it expires; only the browser's copy is removed.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
