package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wishkeeper/wishkeeper-go/internal/model"
)

const (
	tokenIssuer   = "wishkeeper"
	tokenAudience = "wishkeeper-web"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the signed session payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID          string `json:"id"`
	Name            string `json:"name"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// SessionCodec issues and verifies stateless session tokens. Tokens cannot be
// revoked; they stay valid until their absolute expiry.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the codec's time source.
func (c *SessionCodec) WithClock(now func() time.Time) *SessionCodec {
	c.now = now
	return c
}

func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

func (c *SessionCodec) Issue(user model.SessionUser) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:          user.ID,
		Name:            user.Name,
		IsAuthenticated: user.IsAuthenticated,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify returns the session user carried by token. Every failure, including
// expiry and a foreign signing method, is reported as ErrInvalidToken.
func (c *SessionCodec) Verify(tokenString string) (model.SessionUser, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return model.SessionUser{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.SessionUser{}, ErrInvalidToken
	}

	return model.SessionUser{
		ID:              claims.UserID,
		Name:            claims.Name,
		IsAuthenticated: claims.IsAuthenticated,
	}, nil
}
