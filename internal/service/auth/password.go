package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks a presented password against a stored hash.
type PasswordVerifier interface {
	// Compare returns nil when the password matches the hash, and
	// ErrInvalidPassword when it does not.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a bcrypt-backed password verifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Ensure BcryptVerifier implements PasswordVerifier interface
var _ PasswordVerifier = (*BcryptVerifier)(nil)

// Compare implements PasswordVerifier.Compare.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	if err != nil {
		// Malformed hashes also read as a failed login rather than an
		// internal error; the operator hash comes from configuration.
		return ErrInvalidPassword
	}
	return nil
}

// HashPassword generates a bcrypt hash for the given password. Used by the
// hash-generator utility, not by the server itself.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
