package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishkeeper/wishkeeper-go/internal/crypto"
	"github.com/wishkeeper/wishkeeper-go/internal/metrics"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

func newTestAuthService(t *testing.T, password string) *AuthService {
	t.Helper()
	hash := ""
	if password != "" {
		var err error
		hash, err = crypto.HashPassword(password, crypto.Bcrypt)
		require.NoError(t, err)
	}
	codec := crypto.NewSessionCodec("test-secret", 30*24*time.Hour)
	return NewAuthService(hash, codec, metrics.NewCollector("test"))
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, "wishes123")

	user, token, err := svc.Login(context.Background(), model.LoginRequest{Password: "wishes123"})
	require.NoError(t, err)
	assert.Equal(t, model.AdminUser, user)
	assert.NotEmpty(t, token)

	verified, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, model.AdminUser, verified)
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		password   string
		wantErr    error
	}{
		{name: "missing password", configured: "wishes123", password: "", wantErr: ErrPasswordRequired},
		{name: "wrong password", configured: "wishes123", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "not configured", configured: "", password: "anything", wantErr: ErrAuthNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(t, tt.configured)
			_, token, err := svc.Login(context.Background(), model.LoginRequest{Password: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, token)
		})
	}
}

func TestLoginArgon2idHash(t *testing.T) {
	hash, err := crypto.HashPassword("wishes123", crypto.Argon2id)
	require.NoError(t, err)
	svc := NewAuthService(hash, crypto.NewSessionCodec("s", time.Hour), nil)

	_, _, err = svc.Login(context.Background(), model.LoginRequest{Password: "wishes123"})
	assert.NoError(t, err)
}

func TestLoginMalformedHash(t *testing.T) {
	svc := NewAuthService("plaintext", crypto.NewSessionCodec("s", time.Hour), nil)

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Password: "wishes123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsUnauthenticatedToken(t *testing.T) {
	codec := crypto.NewSessionCodec("s", time.Hour)
	svc := NewAuthService("", codec, nil)

	token, err := codec.Issue(model.SessionUser{ID: "admin", Name: "Admin"})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, crypto.ErrInvalidToken)
}
