package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

const (
	MinSecretBytes     = 32
	DefaultSecretBytes = 48
)

var ErrSecretTooShort = errors.New("secret must be at least 32 bytes")

// GenerateSecret returns n random bytes encoded as unpadded URL-safe base64,
// suitable for SESSION_SECRET.
func GenerateSecret(n int) (string, error) {
	if n < MinSecretBytes {
		return "", ErrSecretTooShort
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
