package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wishkeeper/wishkeeper-go/internal/crypto"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

var (
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAuthNotConfigured  = errors.New("admin password is not configured")
)

// AuthService checks the shared admin password and issues session tokens.
type AuthService struct {
	passwordHash string
	codec        *crypto.SessionCodec
	metrics      *metrics.Collector
}

func NewAuthService(passwordHash string, codec *crypto.SessionCodec, m *metrics.Collector) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		codec:        codec,
		metrics:      m,
	}
}

// Login returns the admin identity and a signed token for it.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.SessionUser, string, error) {
	if req.Password == "" {
		s.metrics.IncLogin("invalid_request")
		return model.SessionUser{}, "", ErrPasswordRequired
	}
	if s.passwordHash == "" {
		s.metrics.IncLogin("error")
		return model.SessionUser{}, "", ErrAuthNotConfigured
	}

	match, err := crypto.VerifyPassword(req.Password, s.passwordHash)
	if err != nil {
		s.metrics.IncLogin("error")
		return model.SessionUser{}, "", fmt.Errorf("verify admin password: %w", err)
	}
	if !match {
		s.metrics.IncLogin("failure")
		return model.SessionUser{}, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(model.AdminUser)
	if err != nil {
		s.metrics.IncLogin("error")
		return model.SessionUser{}, "", fmt.Errorf("issue session token: %w", err)
	}

	s.metrics.IncLogin("success")
	return model.AdminUser, token, nil
}

// Verify decodes a session token. A token without isAuthenticated is
// rejected like a forged one.
func (s *AuthService) Verify(token string) (model.SessionUser, error) {
	user, err := s.codec.Verify(token)
	if err != nil {
		return model.SessionUser{}, err
	}
	if !user.IsAuthenticated {
		return model.SessionUser{}, crypto.ErrInvalidToken
	}
	return user, nil
}
