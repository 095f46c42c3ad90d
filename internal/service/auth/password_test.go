package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptVerifierAcceptsMatchingPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
}

func TestBcryptVerifierRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	verifier := NewBcryptVerifier()
	err = verifier.Compare(hash, "incorrect horse")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestBcryptVerifierRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()
	err := verifier.Compare("not-a-bcrypt-hash", "whatever")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
