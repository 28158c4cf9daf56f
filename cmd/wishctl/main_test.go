package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishkeeper/wishkeeper-go/internal/crypto"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func hashFromOutput(t *testing.T, out string) string {
	t.Helper()
	value, ok := strings.CutPrefix(strings.TrimSpace(out), "ADMIN_PASSWORD_HASH=")
	require.True(t, ok, out)
	hash, err := strconv.Unquote(value)
	require.NoError(t, err)
	return hash
}

func TestHashPasswordArgument(t *testing.T) {
	for _, algo := range []string{"bcrypt", "argon2id"} {
		t.Run(algo, func(t *testing.T) {
			out, err := run(t, "", "hash-password", "--algorithm", algo, "wishes123")
			require.NoError(t, err)

			ok, err := crypto.VerifyPassword("wishes123", hashFromOutput(t, out))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestHashPasswordStdin(t *testing.T) {
	out, err := run(t, "from-stdin\n", "hash-password")
	require.NoError(t, err)

	ok, err := crypto.VerifyPassword("from-stdin", hashFromOutput(t, out))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := run(t, "", "hash-password", "abc")
	assert.ErrorIs(t, err, crypto.ErrPasswordTooShort)
}

func TestGenSecret(t *testing.T) {
	out, err := run(t, "", "gen-secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "SESSION_SECRET="))

	_, err = run(t, "", "gen-secret", "--bytes", "8")
	assert.ErrorIs(t, err, crypto.ErrSecretTooShort)
}
