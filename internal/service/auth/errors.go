// Package auth provides authentication for the single-operator API:
// bcrypt password verification and HMAC-signed JWT bearer tokens.
package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before time is in
	// the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrInvalidPassword is returned when the presented password does not
	// match the configured operator password hash.
	ErrInvalidPassword = errors.New("invalid password")
)
